package orbit

import "math"

// Defaults match a camera 5 units in front of the origin.
const (
	DefaultDistance      = 5
	DefaultDampingFactor = 0.05
	DefaultMinDistance   = 1
	DefaultMaxDistance   = 50
	// maxPitch keeps the eye off the poles so the up vector stays valid.
	maxPitch = math.Pi/2 - 0.01
)

// Controls is a damped orbit rig: input adds angular/zoom velocity, Update
// integrates it and bleeds it off by DampingFactor each frame.
type Controls struct {
	Target        [3]float32
	Yaw           float64 // radians around +Y, 0 looks down -Z
	Pitch         float64 // radians above the XZ plane
	Distance      float64
	MinDistance   float64
	MaxDistance   float64
	DampingFactor float64
	EnableDamping bool

	yawVel   float64
	pitchVel float64
	zoomVel  float64
}

// New returns controls with the eye at (0,0,5) looking at the origin, damping on.
func New() *Controls {
	return &Controls{
		Distance:      DefaultDistance,
		MinDistance:   DefaultMinDistance,
		MaxDistance:   DefaultMaxDistance,
		DampingFactor: DefaultDampingFactor,
		EnableDamping: true,
	}
}

// Rotate adds yaw and pitch input in radians.
func (c *Controls) Rotate(dYaw, dPitch float64) {
	c.yawVel += dYaw
	c.pitchVel += dPitch
}

// Zoom adds zoom input; positive values move the eye closer.
func (c *Controls) Zoom(delta float64) {
	c.zoomVel += delta
}

// Moving reports whether residual velocity is still being applied.
func (c *Controls) Moving() bool {
	const eps = 1e-6
	return math.Abs(c.yawVel) > eps || math.Abs(c.pitchVel) > eps || math.Abs(c.zoomVel) > eps
}

// Update applies pending input and returns the eye position. Without damping
// all input is applied at once.
func (c *Controls) Update() [3]float32 {
	f := 1.0
	if c.EnableDamping {
		f = c.DampingFactor
	}
	c.Yaw += c.yawVel * f
	c.Pitch += c.pitchVel * f
	c.Distance -= c.zoomVel * f
	if c.EnableDamping {
		c.yawVel *= 1 - f
		c.pitchVel *= 1 - f
		c.zoomVel *= 1 - f
	} else {
		c.yawVel, c.pitchVel, c.zoomVel = 0, 0, 0
	}
	c.Pitch = clamp(c.Pitch, -maxPitch, maxPitch)
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
	return c.Eye()
}

// Eye returns the eye position for the current angles and distance.
func (c *Controls) Eye() [3]float32 {
	cp := math.Cos(c.Pitch)
	return [3]float32{
		c.Target[0] + float32(c.Distance*cp*math.Sin(c.Yaw)),
		c.Target[1] + float32(c.Distance*math.Sin(c.Pitch)),
		c.Target[2] + float32(c.Distance*cp*math.Cos(c.Yaw)),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
