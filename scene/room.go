package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Material ids reserved for the room shell. Prop materials start at
// FirstPropMaterial.
const (
	MaterialWallpaper  = 0
	MaterialFloor      = 2
	MaterialPlinth     = 3
	MaterialCornice    = 4
	MaterialDoor       = 5
	MaterialGlass      = 6
	MaterialLightShaft = 7

	FirstPropMaterial = 9
)

// WindowOpening is the hole in the right wall (x = +width/2), centred on z = 0.
type WindowOpening struct {
	Width   float32
	Height  float32
	CenterY float32
}

func (w WindowOpening) yMin() float32 { return w.CenterY - w.Height*0.5 }
func (w WindowOpening) yMax() float32 { return w.CenterY + w.Height*0.5 }
func (w WindowOpening) zMin() float32 { return -w.Width * 0.5 }
func (w WindowOpening) zMax() float32 { return w.Width * 0.5 }

// RoomSpec sizes the room shell. The floor sits at y = 0 and the room is
// centred on x and z.
type RoomSpec struct {
	Width, Height, Depth float32
	Window               WindowOpening
	WallpaperScale       float32 // wallpaper repeats per metre
	PlinthHeight         float32
	CorniceHeight        float32
	DoorWidth            float32
	DoorHeight           float32
}

func DefaultRoomSpec() RoomSpec {
	return RoomSpec{
		Width:          6,
		Height:         3.5,
		Depth:          8,
		Window:         WindowOpening{Width: 2, Height: 2, CenterY: 1.75},
		WallpaperScale: 0.5,
		PlinthHeight:   0.15,
		CorniceHeight:  0.2,
		DoorWidth:      0.9,
		DoorHeight:     2.8,
	}
}

const (
	trimInset  = 0.01  // plinths and cornices sit this far off the wall
	doorInset  = 0.015 // door panel offset from the left wall
	glassInset = 0.005
)

func v3(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }

// quadUV spans (0,0)..(u,v) over the corners in order.
func quadUV(u, v float32) [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{{0, 0}, {u, 0}, {u, v}, {0, v}}
}

// BuildRoom returns the opaque shell: walls with the window opening cut out
// of the right wall, floor, ceiling, plinths, cornices and the door.
func BuildRoom(s RoomSpec) *Mesh {
	hw, hh, hd := s.Width/2, s.Height, s.Depth/2
	sc := s.WallpaperScale
	win := s.Window
	b := NewMeshBuilder("room")

	// back, left and front walls
	b.AddQuad(MaterialWallpaper, v3(0, 0, 1),
		[4]mgl32.Vec3{v3(-hw, 0, -hd), v3(hw, 0, -hd), v3(hw, hh, -hd), v3(-hw, hh, -hd)},
		quadUV(s.Width*sc, s.Height*sc))
	b.AddQuad(MaterialWallpaper, v3(1, 0, 0),
		[4]mgl32.Vec3{v3(-hw, 0, hd), v3(-hw, 0, -hd), v3(-hw, hh, -hd), v3(-hw, hh, hd)},
		quadUV(s.Depth*sc, s.Height*sc))
	b.AddQuad(MaterialWallpaper, v3(0, 0, -1),
		[4]mgl32.Vec3{v3(hw, 0, hd), v3(-hw, 0, hd), v3(-hw, hh, hd), v3(hw, hh, hd)},
		quadUV(s.Width*sc, s.Height*sc))

	// right wall in four pieces around the window
	right := v3(-1, 0, 0)
	yMin, yMax, zMin, zMax := win.yMin(), win.yMax(), win.zMin(), win.zMax()
	b.AddQuad(MaterialWallpaper, right,
		[4]mgl32.Vec3{v3(hw, 0, -hd), v3(hw, 0, hd), v3(hw, yMin, hd), v3(hw, yMin, -hd)},
		quadUV(s.Depth*sc, yMin*sc))
	b.AddQuad(MaterialWallpaper, right,
		[4]mgl32.Vec3{v3(hw, yMax, -hd), v3(hw, yMax, hd), v3(hw, hh, hd), v3(hw, hh, -hd)},
		quadUV(s.Depth*sc, (hh-yMax)*sc))
	b.AddQuad(MaterialWallpaper, right,
		[4]mgl32.Vec3{v3(hw, yMin, -hd), v3(hw, yMin, zMin), v3(hw, yMax, zMin), v3(hw, yMax, -hd)},
		quadUV((zMin+hd)*sc, win.Height*sc))
	b.AddQuad(MaterialWallpaper, right,
		[4]mgl32.Vec3{v3(hw, yMin, zMax), v3(hw, yMin, hd), v3(hw, yMax, hd), v3(hw, yMax, zMax)},
		quadUV((hd-zMax)*sc, win.Height*sc))

	// floor and ceiling
	b.AddQuad(MaterialFloor, v3(0, 1, 0),
		[4]mgl32.Vec3{v3(-hw, 0, hd), v3(hw, 0, hd), v3(hw, 0, -hd), v3(-hw, 0, -hd)},
		quadUV(s.Width, s.Depth))
	b.AddQuad(MaterialWallpaper, v3(0, -1, 0),
		[4]mgl32.Vec3{v3(-hw, hh, -hd), v3(hw, hh, -hd), v3(hw, hh, hd), v3(-hw, hh, hd)},
		quadUV(s.Width, s.Depth))

	addTrim(b, MaterialPlinth, s, 0, s.PlinthHeight, quadUV(1, 0.2), s.PlinthHeight < yMin)
	cy := hh - s.CorniceHeight
	addTrim(b, MaterialCornice, s, cy, hh, quadUV(1, 0.3), cy > yMax)

	// door on the left wall
	xd := -hw + doorInset
	z1, z2 := -s.DoorWidth*0.5, s.DoorWidth*0.5
	b.AddQuad(MaterialDoor, v3(1, 0, 0),
		[4]mgl32.Vec3{v3(xd, 0, z2), v3(xd, 0, z1), v3(xd, s.DoorHeight, z1), v3(xd, s.DoorHeight, z2)},
		quadUV(1, 1))

	return b.Build()
}

// addTrim runs a band from y0 to y1 along every wall. The right wall gets
// one only when the band clears the window opening.
func addTrim(b *MeshBuilder, material int, s RoomSpec, y0, y1 float32, uv [4]mgl32.Vec2, onRightWall bool) {
	hw, hd := s.Width/2, s.Depth/2
	b.AddQuad(material, v3(0, 0, 1),
		[4]mgl32.Vec3{v3(-hw, y0, -hd+trimInset), v3(hw, y0, -hd+trimInset), v3(hw, y1, -hd+trimInset), v3(-hw, y1, -hd+trimInset)}, uv)
	b.AddQuad(material, v3(1, 0, 0),
		[4]mgl32.Vec3{v3(-hw+trimInset, y0, hd), v3(-hw+trimInset, y0, -hd), v3(-hw+trimInset, y1, -hd), v3(-hw+trimInset, y1, hd)}, uv)
	if onRightWall {
		b.AddQuad(material, v3(-1, 0, 0),
			[4]mgl32.Vec3{v3(hw-trimInset, y0, -hd), v3(hw-trimInset, y0, hd), v3(hw-trimInset, y1, hd), v3(hw-trimInset, y1, -hd)}, uv)
	}
	b.AddQuad(material, v3(0, 0, -1),
		[4]mgl32.Vec3{v3(hw, y0, hd-trimInset), v3(-hw, y0, hd-trimInset), v3(-hw, y1, hd-trimInset), v3(hw, y1, hd-trimInset)}, uv)
}

// BuildWindowPane returns the glass quad that fills the window opening,
// drawn in its own pass.
func BuildWindowPane(s RoomSpec) *Mesh {
	win := s.Window
	x := s.Width/2 - glassInset
	b := NewMeshBuilder("window")
	b.AddQuad(MaterialGlass, v3(1, 0, 0),
		[4]mgl32.Vec3{v3(x, win.yMin(), win.zMax()), v3(x, win.yMin(), win.zMin()), v3(x, win.yMax(), win.zMin()), v3(x, win.yMax(), win.zMax())},
		quadUV(1, 1))
	return b.Build()
}
