// Package stream serves a live field to browsers over websockets.
//
// One simulator runs on the server. Each frame is encoded once and fanned
// out to every client; pointer, click and resize input from any client is
// fed back through a single channel to the frame loop, so every viewer
// sees and steers the same field.
package stream
