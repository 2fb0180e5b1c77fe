package main

import (
	"github.com/lehigh-university-libraries/marc2bib/cmd"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/marc2bib/format/bibtex"
	_ "github.com/lehigh-university-libraries/marc2bib/format/marcjson"
	_ "github.com/lehigh-university-libraries/marc2bib/format/marcxml"
)

func main() {
	cmd.Execute()
}
