// Package config loads pipeline declarations from YAML files.
//
// A declaration names a class, lists its steps by alias and registered step type, and may carry default flat
// parameters:
//
//	name: MyPipeline
//	steps:
//	  - alias: impute
//	    type: imputer
//	  - alias: clf
//	    type: gaussiannb
//	params:
//	  impute__strategy: median
package config
