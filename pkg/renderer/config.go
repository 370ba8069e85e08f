package renderer

// Config holds the SPPM iteration schedule. Default values are scaled
// down from the reference renderer's defaults for a reasonable default
// run; scene files or callers override as needed.
type Config struct {
	PhotonCount   int     // photons emitted per iteration
	Iterations    int     // total SPPM iterations
	MaxDepth      int     // max bounces per photon and per eye ray
	RaysPerPixel  int     // eye-ray samples per pixel per iteration
	InitialRadius float64 // initial gather radius, scene-space units
	Alpha         float64 // SPPM shrink parameter, (0,1)
	NumWorkers    int     // 0 = use runtime.NumCPU()
	PreviewDir    string  // directory for per-iteration tmp/<i>.bmp checkpoints; empty disables
}

// DefaultConfig returns the reference renderer's parameters, scaled
// down for fast default runs.
func DefaultConfig() Config {
	return Config{
		PhotonCount:   50_000,
		Iterations:    50,
		MaxDepth:      20,
		RaysPerPixel:  4,
		InitialRadius: 0.5,
		Alpha:         0.75,
		NumWorkers:    0,
		PreviewDir:    "tmp",
	}
}
