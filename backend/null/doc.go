// Package null provides a framegraph.Device that needs no GPU.
//
// Resources are synthetic objects with increasing IDs, command encoders
// record nothing and Submit only counts buffers. Every call is counted, so
// the device doubles as a probe for how much work a frame would do:
//
//	dev := null.NewDevice(null.Config{})
//	if err := g.Execute(dev); err != nil { ... }
//	fmt.Println(dev.Stats().Created)
//
// Importing the package registers it with the backend registry under
// backend.BackendNull.
package null
