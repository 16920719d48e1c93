// Package yamlconfig provides a YAML implementation of config.Loader for
// teams that keep their build description next to other YAML tooling.
//
//	hierarchy:
//	  default: true
//	source_sets:
//	  - name: linuxMain
//	    depends_on: [commonMain]
//	targets:
//	  - name: linuxX64
//	    platform: native
//	    compilations:
//	      - name: main
//	        source_sets: [linuxX64Main, linuxMain]
//
// Decoding is strict: unknown keys are errors.
package yamlconfig
