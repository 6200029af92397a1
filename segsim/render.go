// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segsim

import (
	"image"
	"image/color"

	"github.com/GermanBionicSystems/hmidevices/hmi"
	"github.com/GermanBionicSystems/hmidevices/ht1632"
	"github.com/GermanBionicSystems/hmidevices/ht1632/segment"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Geometry of Render, in pixels.
const (
	digitW    = 40
	digitH    = 80
	margin    = 20
	lineWidth = 6
	labelH    = 20
)

// strokes are the end points of every segment on a unit digit 1 wide and 2
// high.
var strokes = [segment.Count][4]float64{
	{0, 0, 0.5, 0},   // A1
	{0.5, 0, 1, 0},   // A2
	{1, 0, 1, 1},     // B
	{1, 1, 1, 2},     // C
	{0, 2, 0.5, 2},   // D1
	{0.5, 2, 1, 2},   // D2
	{0, 1, 0, 2},     // E
	{0, 0, 0, 1},     // F
	{0, 1, 0.5, 1},   // G1
	{0.5, 1, 1, 1},   // G2
	{0, 0, 0.5, 1},   // H
	{0.5, 0, 0.5, 1}, // J
	{1, 0, 0.5, 1},   // K
	{0.5, 1, 1, 2},   // L
	{0.5, 1, 0.5, 2}, // M
	{0.5, 1, 0, 2},   // N
}

// Size is the size of the images returned by Render.
var Size = image.Point{
	X: margin + int(hmi.NumDigits)*(digitW+margin),
	Y: margin + digitH + margin + labelH,
}

// stroke returns the end points of segment seg of digit d in image
// coordinates.
func stroke(d hmi.Digit, seg int) (x1, y1, x2, y2 float64) {
	ox := float64(margin + int(d)*(digitW+margin))
	oy := float64(margin)
	const sx, sy = digitW, digitH / 2
	s := strokes[seg]
	return ox + s[0]*sx, oy + s[1]*sy, ox + s[2]*sx, oy + s[3]*sy
}

// wifiCenter is where the shared wifi / LEFT_1 decimal point dot is drawn.
func wifiCenter() (x, y float64) {
	x1, _, _, y2 := stroke(hmi.Left1, 5)
	return x1 + digitW/2 + margin/2, y2
}

// Render draws f with DefaultOpts colors.
func Render(f ht1632.Frame) image.Image {
	return RenderColors(f, DefaultOpts.On, DefaultOpts.Off)
}

// RenderColors draws f, lit segments in on and unlit ones in off, with the
// digit names below.
func RenderColors(f ht1632.Frame, on, off color.Color) image.Image {
	dc := gg.NewContext(Size.X, Size.Y)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetLineWidth(lineWidth)
	dc.SetLineCapRound()
	for d := hmi.Digit(0); d < hmi.NumDigits; d++ {
		m := f.Digit(d)
		// Unlit first so lit segments are drawn over shared corners.
		for pass := 0; pass < 2; pass++ {
			for seg := 0; seg < segment.Count; seg++ {
				lit := m&(1<<uint(seg)) != 0
				if lit != (pass == 1) {
					continue
				}
				if lit {
					dc.SetColor(on)
				} else {
					dc.SetColor(off)
				}
				dc.DrawLine(stroke(d, seg))
				dc.Stroke()
			}
		}
	}
	if f.Wifi() {
		dc.SetColor(on)
	} else {
		dc.SetColor(off)
	}
	x, y := wifiCenter()
	dc.DrawCircle(x, y, lineWidth/2)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0.6, 0.6, 0.6)
	for d := hmi.Digit(0); d < hmi.NumDigits; d++ {
		cx := float64(margin + int(d)*(digitW+margin) + digitW/2)
		dc.DrawStringAnchored(d.String(), cx, float64(Size.Y-labelH/2), 0.5, 0.5)
	}
	return dc.Image()
}

// SavePNG renders f to a PNG file.
func SavePNG(path string, f ht1632.Frame) error {
	return gg.SavePNG(path, Render(f))
}
