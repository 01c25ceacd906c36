package chessmg

// Precomputed rays for sliders, excluding the origin square.
// Rook directions: 0=N, 1=S, 2=E, 3=W. Bishop directions: 0=NE, 1=NW, 2=SE, 3=SW.
var rookRays [64][4]Bitboard
var bishopRays [64][4]Bitboard

// Directions 0 and 2 of the rook and 0 and 1 of the bishop run towards higher indices.
var rookIncreasing = [4]bool{true, false, true, false}
var bishopIncreasing = [4]bool{true, true, false, false}

func init() {
	initRays()
}

func initRays() {
	rookSteps := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopSteps := [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		for dir := 0; dir < 4; dir++ {
			rookRays[sq][dir] = walkRay(rank, file, rookSteps[dir])
			bishopRays[sq][dir] = walkRay(rank, file, bishopSteps[dir])
		}
	}
}

func walkRay(rank, file int, step [2]int) Bitboard {
	var ray Bitboard
	for r, f := rank+step[0], file+step[1]; r >= 0 && r < 8 && f >= 0 && f < 8; r, f = r+step[0], f+step[1] {
		ray |= NewSquare(f, r).Bitboard()
	}
	return ray
}

// slide returns the squares reached along one ray, stopping at and including the first blocker.
func slide(ray Bitboard, rays *[64][4]Bitboard, dir int, increasing bool, occ Bitboard) Bitboard {
	blockers := ray & occ
	if blockers == 0 {
		return ray
	}
	var first Square
	if increasing {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return ray &^ rays[first][dir]
}

// RookAttacks returns the squares a rook on sq sees given occupancy occ.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	for dir := 0; dir < 4; dir++ {
		attacks |= slide(rookRays[sq][dir], &rookRays, dir, rookIncreasing[dir], occ)
	}
	return attacks
}

// BishopAttacks returns the squares a bishop on sq sees given occupancy occ.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	for dir := 0; dir < 4; dir++ {
		attacks |= slide(bishopRays[sq][dir], &bishopRays, dir, bishopIncreasing[dir], occ)
	}
	return attacks
}

// KnightAttacks returns every square a knight on any square of from can jump to.
func KnightAttacks(from Bitboard) Bitboard {
	return (from<<17)&notFileA |
		(from<<15)&notFileH |
		(from<<10)&notFileAB |
		(from<<6)&notFileGH |
		(from>>17)&notFileH |
		(from>>15)&notFileA |
		(from>>10)&notFileGH |
		(from>>6)&notFileAB
}

// KingAttacks returns every square adjacent to any square of from.
func KingAttacks(from Bitboard) Bitboard {
	side := (from<<1)&notFileA | (from>>1)&notFileH
	row := from | side
	return side | row<<8 | row>>8
}

// PawnAttacks returns the diagonal squares pawns of color c on from attack,
// regardless of what stands there.
func PawnAttacks(c Color, from Bitboard) Bitboard {
	if c == White {
		return (from<<9)&notFileA | (from<<7)&notFileH
	}
	return (from>>7)&notFileA | (from>>9)&notFileH
}

// PawnPushes returns single and double pushes for pawns of color c given full occupancy.
func PawnPushes(c Color, from, occ Bitboard) Bitboard {
	empty := ^occ
	if c == White {
		single := (from << 8) & empty
		double := ((single & (Rank2 << 8)) << 8) & empty
		return single | double
	}
	single := (from >> 8) & empty
	double := ((single & (Rank7 >> 8)) >> 8) & empty
	return single | double
}

// Generate returns the squares reachable by pieces of kind k and color c
// standing on origin. origin may hold several pieces; the result is the union.
// Pawn captures only land on enemy squares here; use PawnAttacks for coverage.
func Generate(k Kind, c Color, origin, own, enemy Bitboard) Bitboard {
	occ := own | enemy
	switch k {
	case Pawn:
		return PawnPushes(c, origin, occ) | PawnAttacks(c, origin)&enemy
	case Knight:
		return KnightAttacks(origin) &^ own
	case King:
		return KingAttacks(origin) &^ own
	}
	var out Bitboard
	for origin != 0 {
		out |= sliderAttacks(k, origin.PopLSB(), occ)
	}
	return out &^ own
}

// Attacks returns the squares covered by pieces of kind k and color c on origin,
// including squares held by their own side.
func Attacks(k Kind, c Color, origin, occ Bitboard) Bitboard {
	switch k {
	case Pawn:
		return PawnAttacks(c, origin)
	case Knight:
		return KnightAttacks(origin)
	case King:
		return KingAttacks(origin)
	}
	var out Bitboard
	for origin != 0 {
		out |= sliderAttacks(k, origin.PopLSB(), occ)
	}
	return out
}

func sliderAttacks(k Kind, sq Square, occ Bitboard) Bitboard {
	switch k {
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
	}
	panic("chessmg: sliderAttacks called with non-slider " + k.String())
}
