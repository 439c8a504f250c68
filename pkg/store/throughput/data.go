package throughput

// Row holds the full and PEFT tokens/sec for one GPU and model size.
// An empty value means the combination was never measured.
type Row struct {
	GPU       string `mapstructure:"gpu" yaml:"gpu"`
	ModelSize string `mapstructure:"model_size" yaml:"model_size"`
	Full      string `mapstructure:"full" yaml:"full,omitempty"`
	PEFT      string `mapstructure:"peft" yaml:"peft,omitempty"`
}

// DefaultRows returns a fresh copy of the built-in table.
func DefaultRows() []Row {
	return []Row{
		{GPU: "t4", ModelSize: "125M", Full: "2500", PEFT: "6000"},
		{GPU: "t4", ModelSize: "350M", Full: "1200", PEFT: "3200"},
		{GPU: "t4", ModelSize: "1B", Full: "500", PEFT: "1600"},
		{GPU: "t4", ModelSize: "3B", Full: "180", PEFT: "900"},
		{GPU: "t4", ModelSize: "7B", PEFT: "600"},

		{GPU: "l4", ModelSize: "125M", Full: "4000", PEFT: "9000"},
		{GPU: "l4", ModelSize: "350M", Full: "2000", PEFT: "5000"},
		{GPU: "l4", ModelSize: "1B", Full: "800", PEFT: "2400"},
		{GPU: "l4", ModelSize: "3B", Full: "300", PEFT: "1200"},
		{GPU: "l4", ModelSize: "7B", Full: "120", PEFT: "800"},
		{GPU: "l4", ModelSize: "13B", PEFT: "350"},

		{GPU: "a10g", ModelSize: "125M", Full: "4500", PEFT: "10000"},
		{GPU: "a10g", ModelSize: "350M", Full: "2200", PEFT: "5500"},
		{GPU: "a10g", ModelSize: "1B", Full: "900", PEFT: "2700"},
		{GPU: "a10g", ModelSize: "3B", Full: "350", PEFT: "1400"},
		{GPU: "a10g", ModelSize: "7B", Full: "150", PEFT: "900"},
		{GPU: "a10g", ModelSize: "13B", PEFT: "400"},

		{GPU: "a100-40gb", ModelSize: "125M", Full: "9000", PEFT: "18000"},
		{GPU: "a100-40gb", ModelSize: "350M", Full: "4500", PEFT: "10000"},
		{GPU: "a100-40gb", ModelSize: "1B", Full: "2000", PEFT: "5500"},
		{GPU: "a100-40gb", ModelSize: "3B", Full: "900", PEFT: "3000"},
		{GPU: "a100-40gb", ModelSize: "7B", Full: "400", PEFT: "1800"},
		{GPU: "a100-40gb", ModelSize: "13B", Full: "200", PEFT: "1000"},
		{GPU: "a100-40gb", ModelSize: "30B", PEFT: "400"},

		{GPU: "a100-80gb", ModelSize: "125M", Full: "9500"},
		{GPU: "a100-80gb", ModelSize: "350M", Full: "4800"},
		{GPU: "a100-80gb", ModelSize: "1B", Full: "2200", PEFT: "6000"},
		{GPU: "a100-80gb", ModelSize: "3B", Full: "1000", PEFT: "3300"},
		{GPU: "a100-80gb", ModelSize: "7B", Full: "450", PEFT: "2000"},
		{GPU: "a100-80gb", ModelSize: "13B", Full: "250", PEFT: "1200"},
		{GPU: "a100-80gb", ModelSize: "30B", Full: "100", PEFT: "500"},
		{GPU: "a100-80gb", ModelSize: "70B", PEFT: "200"},

		{GPU: "h100", ModelSize: "125M", Full: "16000", PEFT: "32000"},
		{GPU: "h100", ModelSize: "350M", Full: "8000", PEFT: "18000"},
		{GPU: "h100", ModelSize: "1B", Full: "3800", PEFT: "10000"},
		{GPU: "h100", ModelSize: "3B", Full: "1700", PEFT: "5500"},
		{GPU: "h100", ModelSize: "7B", Full: "800", PEFT: "3500"},
		{GPU: "h100", ModelSize: "13B", Full: "420", PEFT: "2200"},
		{GPU: "h100", ModelSize: "30B", Full: "180", PEFT: "900"},
		{GPU: "h100", ModelSize: "70B", Full: "80"},
	}
}
