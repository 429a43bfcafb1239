// Command flipbook manages stop-motion animation projects: capturing still
// frames into named projects and exporting them as looping animated GIFs.
package main
