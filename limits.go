package siq

// Limits bounds what Decode is willing to read. Zero fields take the
// defaults below.
type Limits struct {
	MaxArchiveSize  uint64 // container bytes as stored
	MaxMembers      int
	MaxContentSize  uint64 // content.xml after decompression
	MaxResourceSize uint64 // single resource after decompression
	MaxTotalSize    uint64 // all members after decompression
}

func defaultLimits() Limits {
	return Limits{
		MaxArchiveSize:  4 << 30,  // 4 GiB
		MaxMembers:      100_000,  // members in the central directory
		MaxContentSize:  64 << 20, // 64 MiB
		MaxResourceSize: 1 << 30,  // 1 GiB
		MaxTotalSize:    8 << 30,  // 8 GiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxArchiveSize == 0 {
		l.MaxArchiveSize = d.MaxArchiveSize
	}
	if l.MaxMembers == 0 {
		l.MaxMembers = d.MaxMembers
	}
	if l.MaxContentSize == 0 {
		l.MaxContentSize = d.MaxContentSize
	}
	if l.MaxResourceSize == 0 {
		l.MaxResourceSize = d.MaxResourceSize
	}
	if l.MaxTotalSize == 0 {
		l.MaxTotalSize = d.MaxTotalSize
	}
	return l
}
