package model

// Resources is a four-dimensional resource quantity: CPU cores, RAM and disk
// in MB, and network bandwidth in Mbps.
type Resources struct {
	CPU  float64 `json:"cpu" yaml:"cpu"`
	RAM  int64   `json:"ram_mb" yaml:"ram_mb"`
	Disk int64   `json:"disk_mb" yaml:"disk_mb"`
	BW   int64   `json:"bw_mbps" yaml:"bw_mbps"`
}

// Add returns the sum of two Resources values.
func (r Resources) Add(other Resources) Resources {
	return Resources{
		CPU:  r.CPU + other.CPU,
		RAM:  r.RAM + other.RAM,
		Disk: r.Disk + other.Disk,
		BW:   r.BW + other.BW,
	}
}

// Sub returns the difference of two Resources values.
func (r Resources) Sub(other Resources) Resources {
	return Resources{
		CPU:  r.CPU - other.CPU,
		RAM:  r.RAM - other.RAM,
		Disk: r.Disk - other.Disk,
		BW:   r.BW - other.BW,
	}
}

// FitsIn returns true if this quantity fits within the given capacity
// on every dimension.
func (r Resources) FitsIn(capacity Resources) bool {
	return r.CPU <= capacity.CPU &&
		r.RAM <= capacity.RAM &&
		r.Disk <= capacity.Disk &&
		r.BW <= capacity.BW
}

// IsZero returns true if all four dimensions are zero.
func (r Resources) IsZero() bool {
	return r.CPU == 0 && r.RAM == 0 && r.Disk == 0 && r.BW == 0
}
