// Package main provides the entry point for the gocompose CLI.
//
// gocompose composes pipeline classes declared in YAML, lists their flat parameters and fits them on CSV data.
//
// Usage:
//
//	gocompose params -c pipeline.yaml
//	gocompose fit -c pipeline.yaml -d train.csv --set impute__strategy=median
//	gocompose baseline -d train.csv
//	gocompose draw -c pipeline.yaml -o pipeline.dot
package main

func main() {
	Execute()
}
