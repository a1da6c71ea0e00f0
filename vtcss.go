// Package vtcss generates view-transition base styles and utility classes
// for a utility-first CSS pipeline.
//
// The plugin turns a small Options value into nested rule maps and hands
// them to a Host through three registration points:
//
//	plugin := vtcss.New(vtcss.Options{
//		DisableAllReduceMotion: true,
//		Styles: vtcss.Styles{
//			{Name: "root", Spec: vtcss.Shared(vtcss.Decl("animation", "none"))},
//		},
//	})
//	plugin(host)
//
// # Host
//
// Any type implementing Host can receive the registrations. HostFuncs adapts
// three plain functions, and internal/stylesheet provides a host that renders
// CSS text.
//
// # CLI Tool
//
// vtcss also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/vtcss/cmd/vtcss@latest
package vtcss
