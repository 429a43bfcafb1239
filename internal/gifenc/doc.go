// Package gifenc assembles a project's stored frames into an animated GIF.
//
// The first frame dictates the canvas size; every frame is stretched onto
// that canvas before quantization. Quantization runs on a small worker pool
// while frame order in the output always matches capture order.
package gifenc
