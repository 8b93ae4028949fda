package vc2

import "fmt"

// Profile is a coded profile number (C.2).
type Profile int

const (
	ProfileLowDelay    Profile = 0
	ProfileHighQuality Profile = 3
)

func (p Profile) String() string {
	switch p {
	case ProfileLowDelay:
		return "low_delay"
	case ProfileHighQuality:
		return "high_quality"
	}
	return fmt.Sprintf("profile(%d)", int(p))
}

// Level is a coded level number (C.3). Levels restrict the coding options a
// conformant stream may use; the restrictions themselves live in the level
// constraint tables, not here.
type Level int

const (
	// LevelUnconstrained places no restrictions on the stream.
	LevelUnconstrained Level = 0
	// LevelSubSD restricts streams to sub-SD base video formats.
	LevelSubSD Level = 1
	// LevelHDOverSDI restricts streams to HD formats carried over an
	// SD-SDI link.
	LevelHDOverSDI Level = 64
	// LevelUHDOverHDSDI restricts streams to UHD formats carried over an
	// HD-SDI link.
	LevelUHDOverHDSDI Level = 65
)

func (l Level) String() string {
	switch l {
	case LevelUnconstrained:
		return "unconstrained"
	case LevelSubSD:
		return "sub_sd"
	case LevelHDOverSDI:
		return "hd_over_sd_sdi"
	case LevelUHDOverHDSDI:
		return "uhd_over_hd_sdi"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// PictureCodingMode selects whether pictures are whole frames or fields
// (11.5).
type PictureCodingMode int

const (
	PicturesAreFrames PictureCodingMode = 0
	PicturesAreFields PictureCodingMode = 1
)

// WaveletFilter is a wavelet transform index (12.4.2, Table 12.1).
type WaveletFilter int

const (
	WaveletDeslauriersDubuc97  WaveletFilter = 0
	WaveletLeGall53            WaveletFilter = 1
	WaveletDeslauriersDubuc137 WaveletFilter = 2
	WaveletHaar0               WaveletFilter = 3
	WaveletHaar1               WaveletFilter = 4
	WaveletFidelity            WaveletFilter = 5
	WaveletDaubechies97        WaveletFilter = 6
)

func (w WaveletFilter) String() string {
	switch w {
	case WaveletDeslauriersDubuc97:
		return "deslauriers_dubuc_9_7"
	case WaveletLeGall53:
		return "le_gall_5_3"
	case WaveletDeslauriersDubuc137:
		return "deslauriers_dubuc_13_7"
	case WaveletHaar0:
		return "haar_no_shift"
	case WaveletHaar1:
		return "haar_with_shift"
	case WaveletFidelity:
		return "fidelity"
	case WaveletDaubechies97:
		return "daubechies_9_7"
	}
	return fmt.Sprintf("wavelet(%d)", int(w))
}

// ColorDiffFormat is a color difference sampling format index (11.4.4).
type ColorDiffFormat int

const (
	ColorDiff444 ColorDiffFormat = 0
	ColorDiff422 ColorDiffFormat = 1
	ColorDiff420 ColorDiffFormat = 2
)

// SourceSampling distinguishes progressive and interlaced sources (11.4.5).
type SourceSampling int

const (
	ProgressiveSampling SourceSampling = 0
	InterlacedSampling  SourceSampling = 1
)
