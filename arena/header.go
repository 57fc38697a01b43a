package arena

// header packs a clause's flags and size into a single word, in the style
// of go-air-gini's Watch: a small integer type with bit-twiddling accessors
// rather than a struct, since it lives inline in the arena's word array.
//
//	bit 0       deleted
//	bit 1       relocated
//	bit 2       learnt
//	bit 3       is_sbp
//	bit 4       propagated
//	bit 5       res_anal
//	bits 6-31   size
type header uint32

const (
	flagDeleted    header = 1 << 0
	flagRelocated  header = 1 << 1
	flagLearnt     header = 1 << 2
	flagIsSBP      header = 1 << 3
	flagPropagated header = 1 << 4
	flagResAnal    header = 1 << 5
	sizeShift             = 6
)

func makeHeader(size int, learnt, isSBP bool) header {
	h := header(size) << sizeShift
	if learnt {
		h |= flagLearnt
	}
	if isSBP {
		h |= flagIsSBP
	}
	return h
}

func (h header) size() int          { return int(h >> sizeShift) }
func (h header) learnt() bool       { return h&flagLearnt != 0 }
func (h header) isSBP() bool        { return h&flagIsSBP != 0 }
func (h header) deleted() bool      { return h&flagDeleted != 0 }
func (h header) relocated() bool    { return h&flagRelocated != 0 }
func (h header) propagated() bool   { return h&flagPropagated != 0 }
func (h header) resAnal() bool      { return h&flagResAnal != 0 }
func (h header) withSize(n int) header {
	return header(n)<<sizeShift | (h & (1<<sizeShift - 1))
}
func (h header) withDeleted() header      { return h | flagDeleted }
func (h header) withRelocated() header    { return h | flagRelocated }
func (h header) withPropagated() header   { return h | flagPropagated }
func (h header) withoutPropagated() header { return h &^ flagPropagated }
func (h header) withResAnal() header      { return h | flagResAnal }
