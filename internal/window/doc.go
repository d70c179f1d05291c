// Package window shows the particle field in a native window using ebiten.
//
// Window pixels map one to one onto field units, so the field behaves
// exactly as it would behind a web page of the same size.
package window
