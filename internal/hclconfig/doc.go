// Package hclconfig provides the HCL implementation of config.Loader.
//
// A build is described with three block types:
//
//	hierarchy {
//	  default = true
//	}
//
//	source_set "linuxMain" {
//	  depends_on = [source_set.commonMain]
//	}
//
//	target "linuxX64" {
//	  platform = "native"
//	  compilation "main" {
//	    source_sets = [source_set.linuxX64Main, "linuxMain"]
//	  }
//	}
//
// Source sets are referenced either as `source_set.<name>` traversals or as
// plain string literals. All `.hcl` files under the given paths are merged
// into one model.
package hclconfig
