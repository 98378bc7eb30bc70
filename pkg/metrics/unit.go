package metrics

// Short unit codes accepted by the Store's add operations.
const (
	UnitMilliseconds = "ms"
	UnitSeconds      = "s"
	UnitMegabytes    = "MB"
	UnitKilobytes    = "kB"
	UnitGigabytes    = "GB"
	UnitBytes        = "B"
	UnitPercent      = "percent"
	UnitCount        = "count"
)

// canonicalUnits maps short unit codes to the spelled-out names carried
// by emitted metrics. Unknown codes pass through unchanged.
var canonicalUnits = map[string]string{
	UnitMilliseconds: "Milliseconds",
	UnitSeconds:      "Seconds",
	UnitMegabytes:    "Megabytes",
	UnitKilobytes:    "Kilobytes",
	UnitGigabytes:    "Gigabytes",
	UnitBytes:        "Bytes",
	UnitPercent:      "Percent",
	UnitCount:        "Count",
	"":               "unit",
}

// CanonicalUnit returns the spelled-out name for a short unit code, or
// the code itself when it has no canonical form.
func CanonicalUnit(unit string) string {
	if canonical, ok := canonicalUnits[unit]; ok {
		return canonical
	}
	return unit
}
