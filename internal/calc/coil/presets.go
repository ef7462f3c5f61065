package coil

// Fluid holds properties already corrected to ~20 °C.
type Fluid struct {
	Name          string  `json:"name"`
	Label         string  `json:"label"`
	LabelBG       string  `json:"label_bg"`
	DensityKgM3   float64 `json:"density_kg_m3"`
	ViscosityMPaS float64 `json:"viscosity_mpa_s"`
}

type Pipe struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	LabelBG     string  `json:"label_bg"`
	RoughnessMM float64 `json:"roughness_mm"`
}

var fluids = []Fluid{
	{"water", "Water (20°C)", "Вода (20°C)", 998.0, 1.00},
	{"whole_milk", "Whole milk (~20°C)", "Мляко (цяло, ~20°C)", 1030.0, 2.00},
	{"skim_milk", "Skim milk (~20°C)", "Обезмаслено мляко (~20°C)", 1035.0, 1.70},
	{"whey", "Whey (~20°C)", "Суроватка (~20°C)", 1025.0, 1.30},
	{"cream_20", "Cream 20% (~20°C)", "Сметана 20% (~20°C)", 1010.0, 5.00},
}

var pipes = []Pipe{
	{"stainless_food", "Food-grade stainless (smooth)", "Неръждаема хранителна тръба (гладка)", 0.0015},
	{"technical_steel", "Technical steel", "Техническа стомана", 0.045},
}

func Fluids() []Fluid {
	return append([]Fluid(nil), fluids...)
}

func Pipes() []Pipe {
	return append([]Pipe(nil), pipes...)
}

func LookupFluid(name string) (Fluid, bool) {
	for _, f := range fluids {
		if f.Name == name {
			return f, true
		}
	}
	return Fluid{}, false
}

func LookupPipe(name string) (Pipe, bool) {
	for _, p := range pipes {
		if p.Name == name {
			return p, true
		}
	}
	return Pipe{}, false
}

func (in Input) WithFluid(f Fluid) Input {
	in.DensityKgM3 = f.DensityKgM3
	in.ViscosityMPaS = f.ViscosityMPaS
	return in
}

func (in Input) WithPipe(p Pipe) Input {
	in.RoughnessMM = p.RoughnessMM
	return in
}
