package field

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable digest of the canonical catalog. Two
// processes built from the same constants produce the same value, so an
// exported snapshot can be checked against the running code.
func (f *Field) Fingerprint() string {
	d := xxhash.New()
	var buf [8]byte
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}

	putFloat(f.length)
	putFloat(f.width)
	for _, id := range f.TagIDs() {
		tag := f.tags[id]
		binary.LittleEndian.PutUint64(buf[:], uint64(id))
		_, _ = d.Write(buf[:])
		putFloat(tag.Translation.X)
		putFloat(tag.Translation.Y)
		putFloat(tag.Translation.Z)
		putFloat(tag.Rotation.Roll)
		putFloat(tag.Rotation.Pitch)
		putFloat(tag.Rotation.Yaw)
	}
	for _, r := range f.Regions() {
		_, _ = d.WriteString(r.Name)
		for _, p := range r.Points {
			putFloat(p.X)
			putFloat(p.Y)
			putFloat(p.Z)
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
