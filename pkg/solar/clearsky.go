// Package solar computes clear-sky irradiance at the lake site, used to
// estimate cloud cover from the pyranometer record when the meteorological
// export has gaps in cloud observations.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const solarConstant = 1361.0 // W/m² at the top of the atmosphere

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// equationOfTime returns the difference between apparent and mean solar
// time in minutes, from low-precision solar coordinates (Meeus).
func equationOfTime(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	return radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4
}

// zenithAngle returns the solar zenith angle in degrees at a UTC time and
// site coordinates.
func zenithAngle(t time.Time, latitude, longitude float64) float64 {
	N := t.YearDay()
	delta := 23.45 * math.Sin(degToRad(360.0/365.0*float64(N-81)))

	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	timeOffset := 4*longitude + equationOfTime(t)
	tst := utcMin + timeOffset
	H := (tst / 4) - 180

	latRad := degToRad(latitude)
	deltaRad := degToRad(delta)
	cosThetaZ := math.Sin(latRad)*math.Sin(deltaRad) +
		math.Cos(latRad)*math.Cos(deltaRad)*math.Cos(degToRad(H))
	return radToDeg(math.Acos(cosThetaZ))
}

// ClearSkyGHI returns the clear-sky global horizontal irradiance in W/m²
// at a UTC time for the given site, using the Ineichen-Perez model with a
// typical clear-sky Linke turbidity. Zero when the sun is below the
// horizon.
func ClearSkyGHI(t time.Time, latitude, longitude, altitude float64) float64 {
	t = t.UTC()
	thetaZ := zenithAngle(t, latitude, longitude)
	if thetaZ >= 90.0 {
		return 0.0
	}

	N := t.YearDay()
	// Extraterrestrial radiation adjusted for Earth-Sun distance
	G0 := solarConstant * (1 + 0.033*math.Cos(degToRad(360.0*(float64(N)-3)/365.0)))

	const TL = 2.0 // Linke turbidity, clear sky
	// Kasten-Young air mass
	AM := 1.0 / (math.Cos(degToRad(thetaZ)) + 0.50572*math.Pow(96.07995-thetaZ, -1.6364))
	const c = 0.7
	const a = 0.027
	DNI := G0 * c * math.Exp(-a*AM*TL*math.Exp(-altitude/8000.0))
	fh := 0.1 + 0.05*math.Sin(math.Pi*float64(N-100)/365.0)
	DHI := fh * G0 * math.Sin(degToRad(thetaZ))

	return DNI*math.Cos(degToRad(thetaZ)) + DHI
}
