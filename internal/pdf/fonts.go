package pdf

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const unicodeFamily = "GoFont"

var (
	goRegular = goregular.TTF
	goBold    = gobold.TTF
)
