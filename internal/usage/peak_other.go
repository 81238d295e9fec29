//go:build !linux && !darwin

package usage

func peakRSS() uint64 {
	return runtimeSys()
}
