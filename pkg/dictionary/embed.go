package dictionary

import (
	"embed"
	"io/fs"
)

// The default dictionary ships inside the binary so an empty dictionary
// directory argument works without any installed data.
//
//go:embed data/*.sen
var embedded embed.FS

func embeddedData() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// embed paths are fixed at compile time
		panic(err)
	}
	return sub
}
