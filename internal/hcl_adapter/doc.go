// Package hcl_adapter loads pipeline definitions written in HCL and
// translates them into the format-agnostic config.Model.
//
// A definition holds exactly one pipeline block, across all files loaded
// together:
//
//	pipeline "calc" {
//	  data = { x = 1 }
//
//	  token "word" {
//	    pattern = "[a-z]+"
//	  }
//
//	  task "parse" {
//	    type    = "parse"
//	    parser  = "hcl_expression"
//	    inputs  = ["Source"]
//	    outputs = ["ast"]
//	  }
//	}
package hcl_adapter
