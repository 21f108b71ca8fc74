package noise

import "math"

var gradients = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// perlin3 evaluates improved gradient noise at (x, y, z). The z lattice wraps
// every period cells. The result lies roughly in [-1, 1].
func perlin3(salt uint64, x, y, z float64, period int) float64 {
	xf, yf, zf := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int64(xf), int64(yf), int64(zf)
	x -= xf
	y -= yf
	z -= zf

	z0 := wrap(zi, period)
	z1 := wrap(zi+1, period)

	u, v, w := fade(x), fade(y), fade(z)

	n000 := grad(salt, xi, yi, z0, x, y, z)
	n100 := grad(salt, xi+1, yi, z0, x-1, y, z)
	n010 := grad(salt, xi, yi+1, z0, x, y-1, z)
	n110 := grad(salt, xi+1, yi+1, z0, x-1, y-1, z)
	n001 := grad(salt, xi, yi, z1, x, y, z-1)
	n101 := grad(salt, xi+1, yi, z1, x-1, y, z-1)
	n011 := grad(salt, xi, yi+1, z1, x, y-1, z-1)
	n111 := grad(salt, xi+1, yi+1, z1, x-1, y-1, z-1)

	return lerp(w,
		lerp(v, lerp(u, n000, n100), lerp(u, n010, n110)),
		lerp(v, lerp(u, n001, n101), lerp(u, n011, n111)),
	)
}

func grad(salt uint64, xi, yi, zi int64, x, y, z float64) float64 {
	g := gradients[hash3(salt, xi, yi, zi)%12]
	return g[0]*x + g[1]*y + g[2]*z
}

// hash3 replaces the classic 256-entry permutation table so the lattice never
// repeats across large frames.
func hash3(salt uint64, x, y, z int64) uint64 {
	h := salt
	h = mix(h ^ uint64(x)*0x9e3779b97f4a7c15)
	h = mix(h ^ uint64(y)*0xc2b2ae3d27d4eb4f)
	h = mix(h ^ uint64(z)*0x165667b19e3779f9)
	return h
}

// mix is the splitmix64 finalizer.
func mix(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

func wrap(i int64, period int) int64 {
	if period <= 0 {
		return i
	}
	p := int64(period)
	i %= p
	if i < 0 {
		i += p
	}
	return i
}

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(t, a, b float64) float64 { return a + t*(b-a) }
