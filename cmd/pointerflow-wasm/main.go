//go:build js && wasm

// Command pointerflow-wasm binds the pointer pipeline to a canvas in the
// browser and draws the normalized events back onto it.
package main

import (
	"image"
	"syscall/js"

	"github.com/phinze/pointerflow/internal/binding"
	"github.com/phinze/pointerflow/internal/logging"
	"github.com/phinze/pointerflow/internal/visualizer"
	"github.com/phinze/pointerflow/internal/window"
)

const canvasID = "pointerflow"

func main() {
	if err := logging.Configure("info", nil); err != nil {
		panic(err)
	}
	log := logging.For("wasm")

	global := js.Global()
	canvas := global.Get("document").Call("getElementById", canvasID)
	if canvas.IsNull() {
		log.Errorf("no <canvas id=%q> in the page", canvasID)
		return
	}
	// Keep the browser from turning touch drags into scrolling.
	canvas.Get("style").Set("touchAction", "none")

	w := window.New(1, global.Get("devicePixelRatio").Float())
	release := binding.RegisterDOM(canvas, w)
	defer release()

	vis := visualizer.New(0)
	ctx2d := canvas.Call("getContext", "2d")
	var img *image.RGBA

	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		w.SetScaleFactor(global.Get("devicePixelRatio").Float())

		evs, err := w.Events().Drain()
		if err != nil {
			log.Errorf("window %d: %v", w.ID(), err)
			return nil
		}
		vis.Consume(evs)

		scale := w.ScaleFactor()
		width := int(canvas.Get("clientWidth").Float() * scale)
		height := int(canvas.Get("clientHeight").Float() * scale)
		if width > 0 && height > 0 {
			if img == nil || img.Bounds().Dx() != width || img.Bounds().Dy() != height {
				img = image.NewRGBA(image.Rect(0, 0, width, height))
				canvas.Set("width", width)
				canvas.Set("height", height)
			}
			vis.Render(img, scale)
			data := global.Get("Uint8ClampedArray").New(len(img.Pix))
			js.CopyBytesToJS(data, img.Pix)
			ctx2d.Call("putImageData", global.Get("ImageData").New(data, width, height), 0, 0)
		}

		global.Call("requestAnimationFrame", frame)
		return nil
	})
	global.Call("requestAnimationFrame", frame)

	select {}
}
