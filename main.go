package main

import (
	"github.com/lehigh-university-libraries/findingaid/cmd"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/findingaid/format/csv"
	_ "github.com/lehigh-university-libraries/findingaid/format/ead3xml"
	_ "github.com/lehigh-university-libraries/findingaid/format/jsonl"
	_ "github.com/lehigh-university-libraries/findingaid/format/solrjson"
	_ "github.com/lehigh-university-libraries/findingaid/format/solrxml"
)

func main() {
	cmd.Execute()
}
