package vc2

// RawPicture is an uncoded picture: three row-major component sample
// planes sized per PictureDimensions for the codec features in use.
type RawPicture struct {
	PictureNumber uint32
	Y             []int32
	C1            []int32
	C2            []int32
}
