package genre

import (
	"moviecatalog/errs"
	"strings"
)

var ErrInvalidName = errs.Errorf(errs.EINVALID, "genre: invalid name")

type Genre struct {
	ID   int
	Name string
}

func (g Genre) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
