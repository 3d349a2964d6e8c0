package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"mazebots.ai/internal/sim/mathx"
)

type hashWriter interface {
	Write(p []byte) (n int, err error)
}

func (w *World) stateDigest(nowTick uint64) string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteU64(h, &tmp, nowTick)
	h.Write([]byte(w.cfg.LevelID))
	h.Write([]byte(w.levelDigest))
	digestWriteI64(h, &tmp, w.cfg.Seed)
	digestWriteU64(h, &tmp, w.nextBotNum.Load())
	digestWriteU64(h, &tmp, w.spawned)
	digestWriteU64(h, &tmp, w.arrivals)

	digestWriteU64(h, &tmp, uint64(len(w.bots)))
	for _, b := range w.bots {
		h.Write([]byte(b.ID))
		digestWriteVec3(h, &tmp, b.Pos)
		digestWriteVec3(h, &tmp, b.Mover.Velocity)
		h.Write([]byte{byte(b.Facing), boolByte(b.HasTarget)})
		digestWriteVec3(h, &tmp, b.Target)
		digestWriteU64(h, &tmp, b.SpawnTick)
		digestWriteU64(h, &tmp, b.Steps)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteI64(h hashWriter, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func digestWriteVec3(h hashWriter, tmp *[8]byte, v mathx.Vec3) {
	digestWriteU64(h, tmp, math.Float64bits(v.X))
	digestWriteU64(h, tmp, math.Float64bits(v.Y))
	digestWriteU64(h, tmp, math.Float64bits(v.Z))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
