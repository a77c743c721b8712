package reading

import "fmt"

// IndexColumn is the column label of the timestamp key in persisted stores.
const IndexColumn = "TimeStamp"

// Field identifies one quantity printed on a buoy panel.
type Field int

// Wind panel fields.
const (
	TimeStamp Field = iota
	WindSpeedAvgKts
	WindSpeedGstKts
	WindSpeedAvgMph
	WindSpeedGstMph
	WindSpeedAvgMps
	WindSpeedGstMps
	WindDir
	AirTempF
	AirTempC
	BaromPresMmHg
	BaromPresMB
	DewPointF
	DewPointC
	RelHum
	WindSpeedM24
	WindDirM24
	WindTimeM24

	// Wave panel fields.
	WaveHgtSigFt
	WaveHgtMaxFt
	WaveHgtSigM
	WaveHgtMaxM
	WaveDir
	WavPerAvg
	WavPerDom
	WaveHgt24
	WaveDirM24
	WavePerAvgM24
	WavePerDomM24
	WaveTimeM24

	fieldCount
)

// Column labels, kept identical to the CSV headers the kiosk graphs read.
var fieldNames = [fieldCount]string{
	TimeStamp:       IndexColumn,
	WindSpeedAvgKts: "WindSpeedAvg [kts]",
	WindSpeedGstKts: "WindSpeedGst [kts]",
	WindSpeedAvgMph: "WindSpeedAvg [mph]",
	WindSpeedGstMph: "WindSpeedGst [mph]",
	WindSpeedAvgMps: "WindSpeedAvg [m/s]",
	WindSpeedGstMps: "WindSpeedGst [m/s]",
	WindDir:         "WindDir [°]",
	AirTempF:        "AirTemp [°F]",
	AirTempC:        "AirTemp [°C]",
	BaromPresMmHg:   "BaromPres [mmHg]",
	BaromPresMB:     "BaromPres [mB]",
	DewPointF:       "DewPoint [°F]",
	DewPointC:       "DewPoint [°C]",
	RelHum:          "RelHum [%]",
	WindSpeedM24:    "WindSpeedM24 [kt]",
	WindDirM24:      "WindDirM24 [°]",
	WindTimeM24:     "WindTimeM24",
	WaveHgtSigFt:    "WaveHgtSig [ft]",
	WaveHgtMaxFt:    "WaveHgtMax [ft]",
	WaveHgtSigM:     "WaveHgtSig [m]",
	WaveHgtMaxM:     "WaveHgtMax [m]",
	WaveDir:         "WaveDir [°]",
	WavPerAvg:       "WavPerAvg [s]",
	WavPerDom:       "WavPerDom [s]",
	WaveHgt24:       "WaveHgt24 [ft]",
	WaveDirM24:      "WaveDirM24 [°]",
	WavePerAvgM24:   "WavePerAvgM24 [s]",
	WavePerDomM24:   "WavePerDomM24 [s]",
	WaveTimeM24:     "WaveTimeM24",
}

// String returns the column label of the field.
func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	return f >= 0 && f < fieldCount
}

// ParseField looks a field up by its column label.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}
