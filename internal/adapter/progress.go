package adapter

import "io"

// progressReader reports every chunk read through it to fn.
type progressReader struct {
	r     io.Reader
	total int64
	n     int64
	fn    ProgressFunc
}

func newProgressReader(r io.Reader, total int64, fn ProgressFunc) io.Reader {
	if fn == nil {
		return r
	}
	if total < 0 {
		total = -1
	}
	return &progressReader{r: r, total: total, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.n += int64(n)
		p.fn(p.n, p.total)
	}
	return n, err
}
