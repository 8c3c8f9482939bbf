// Package graphdesc loads frame descriptions written in HCL and declares
// them into a framegraph.FrameGraph.
//
// A description lists resources and passes:
//
//	buffer "lights" {
//	  size  = 4096
//	  usage = ["storage", "copy_dst"]
//	}
//
//	texture "hdr" {
//	  width  = screen.width
//	  height = screen.height
//	  format = "rgba8unorm"
//	  usage  = ["render_attachment", "texture_binding"]
//	}
//
//	import_texture "swapchain" {
//	  width  = screen.width
//	  height = screen.height
//	  format = "bgra8unorm"
//	  usage  = ["render_attachment"]
//	}
//
//	pass "lighting" {
//	  reads  = ["lights"]
//	  writes = ["hdr"]
//	}
//
// Expressions may refer to screen.width and screen.height. Passes are
// declared in file order; a pass that writes a resource makes the new
// version visible to every later pass.
package graphdesc
