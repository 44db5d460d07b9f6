package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/lloyd/cmd/lloyd/run"
	"github.com/hupe1980/lloyd/cmd/lloyd/scale"
	"github.com/hupe1980/lloyd/cmd/lloyd/trace"
	"github.com/hupe1980/lloyd/cmd/lloyd/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		run.Run(os.Args[2:])
	case "trace":
		trace.Run(os.Args[2:])
	case "scale":
		scale.Run(os.Args[2:])
	case "version":
		version.Run()
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lloyd - 2-D k-means clustering with sequential and parallel engines

Usage:
  lloyd <command> [options]

Commands:
  run       Cluster a point set and print the centroids
  trace     Record the iteration history of a run to a store
  scale     Run a strong or weak scaling experiment
  version   Print version information
  help      Show this help message

Stores:
  results, file:///dir    local directory
  minio://bucket/prefix   MinIO (storage.minio.* or LLOYD_MINIO_*)
  s3://bucket/prefix      Amazon S3 (default AWS credential chain)

Run 'lloyd <command> --help' for more information on a command.`)
}
