package renderer

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/Stroby241/svoray/scene"
	"github.com/Stroby241/svoray/tracer"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// Coefficients for converting delta cursor movements to yaw/pitch camera angles.
	mouseSensitivityX float32 = 0.005
	mouseSensitivityY float32 = 0.005

	// Camera movement speed in voxel units.
	cameraMoveSpeed float32 = 1.0
)

const (
	leftMouseButton  = 0
	rightMouseButton = 1
)

// An interactive opengl-based renderer.
type interactiveGLRenderer struct {
	*defaultRenderer

	// opengl handles
	window    *glfw.Window
	fbTexture uint32
	texFbo    uint32

	// state
	lastCursorPos [2]float32
	mousePressed  [2]bool
	camera        *scene.Camera

	// A camera change invalidates the current frame.
	dirty bool

	// mutex for synchronizing updates
	sync.Mutex
}

// Create a new interactive opengl renderer using the specified block
// scheduler. Must be called from the main goroutine with the OS thread
// locked; glfw event processing is bound to it.
func NewInteractive(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	// glBlitFramebuffer copies the texture with the Y axis inverted. To
	// correct this, the camera frustrum corners are flipped so the frame is
	// rendered upside-down.
	sc.Camera.InvertY = true
	sc.Camera.Update()

	base, err := NewDefault(sc, scheduler, opts)
	if err != nil {
		return nil, err
	}

	r := &interactiveGLRenderer{
		defaultRenderer: base.(*defaultRenderer),
		camera:          sc.Camera,
		dirty:           true,
	}

	if err = r.initGL(opts); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

func (r *interactiveGLRenderer) Close() {
	if r.window != nil {
		r.window.SetShouldClose(true)
		glfw.Terminate()
		r.window = nil
	}
	r.defaultRenderer.Close()
}

func (r *interactiveGLRenderer) initGL(opts Options) error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	r.window, err = glfw.CreateWindow(int(opts.FrameW), int(opts.FrameH), "svoray", nil, nil)
	if err != nil {
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	r.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	// Setup texture for image data
	gl.GenTextures(1, &r.fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(opts.FrameW), int32(opts.FrameH), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	// Attach texture to FBO
	gl.GenFramebuffers(1, &r.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	// Bind event callbacks
	r.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	r.window.SetKeyCallback(r.onKeyEvent)
	r.window.SetMouseButtonCallback(r.onMouseEvent)
	r.window.SetCursorPosCallback(r.onCursorPosEvent)

	return nil
}

func (r *interactiveGLRenderer) Render() error {
	for !r.window.ShouldClose() {
		if !r.dirty {
			// Block until an input event invalidates the frame.
			glfw.WaitEvents()
			continue
		}

		// Render next frame
		r.Lock()
		r.dirty = false
		err := r.renderFrame()
		if err != nil {
			r.Unlock()
			return err
		}

		// Update texture with frame data and copy it to the framebuffer
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(r.options.FrameW), int32(r.options.FrameH), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&r.frameBuffer[0]))
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
		gl.BlitFramebuffer(0, 0, int32(r.options.FrameW), int32(r.options.FrameH), 0, 0, int32(r.options.FrameW), int32(r.options.FrameH), gl.COLOR_BUFFER_BIT, gl.LINEAR)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		r.window.SwapBuffers()
		r.Unlock()
		glfw.PollEvents()
	}
	return nil
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}

	var moveDir scene.CameraDirection
	switch key {
	case glfw.KeyEscape:
		r.window.SetShouldClose(true)
		return
	case glfw.KeyUp, glfw.KeyW:
		moveDir = scene.Forward
	case glfw.KeyDown, glfw.KeyS:
		moveDir = scene.Backward
	case glfw.KeyLeft, glfw.KeyA:
		moveDir = scene.Left
	case glfw.KeyRight, glfw.KeyD:
		moveDir = scene.Right
	default:
		return
	}

	// Double speed if shift is pressed
	var speedScaler float32 = 1.0
	if (mods & glfw.ModShift) == glfw.ModShift {
		speedScaler = 2.0
	}
	r.camera.Move(moveDir, speedScaler*cameraMoveSpeed)
	r.updateView()
}

func (r *interactiveGLRenderer) onMouseEvent(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft && button != glfw.MouseButtonRight {
		return
	}

	r.mousePressed[leftMouseButton] = false
	r.mousePressed[rightMouseButton] = false

	if action == glfw.Press {
		xPos, yPos := w.GetCursorPos()
		r.lastCursorPos[0], r.lastCursorPos[1] = float32(xPos), float32(yPos)

		buttonIndex := leftMouseButton
		if button == glfw.MouseButtonRight {
			buttonIndex = rightMouseButton
		}

		r.mousePressed[buttonIndex] = true
	}
}

func (r *interactiveGLRenderer) onCursorPosEvent(w *glfw.Window, xPos, yPos float64) {
	if !r.mousePressed[leftMouseButton] {
		return
	}

	// Calculate delta movement and apply mouse sensitivity
	deltaX := (r.lastCursorPos[0] - float32(xPos)) * mouseSensitivityX
	deltaY := (r.lastCursorPos[1] - float32(yPos)) * mouseSensitivityY
	r.lastCursorPos[0], r.lastCursorPos[1] = float32(xPos), float32(yPos)

	// The left mouse button rotates lookat around eye
	r.camera.Pitch = deltaY
	r.camera.Yaw = deltaX
	r.camera.Update()
	r.updateView()
}

func (r *interactiveGLRenderer) updateView() {
	r.Lock()
	defer r.Unlock()

	r.updateCamera(r.camera)
	r.dirty = true
}
