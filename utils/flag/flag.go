/*
flag package sets up cli flags shared across the process.

Flags listed in this package are service-agnostic. For service dependent
flags please define in their respective package.
*/
package flag

import (
	"flag"
)

const (
	MetadataServer = "metadata_server"
)

var (
	IsDevelopment *bool
	ServiceName   *string
)

func init() {
	IsDevelopment = flag.Bool("dev", true, "set to true if the current run is for development. default value is true")
	ServiceName = flag.String("service", MetadataServer, "service name attached to every log line")
}
