package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title         string             `yaml:"Title"`
	Physics       string             `yaml:"Physics"` // Poisson, NonlinearPoisson, LinearElasticity, HyperElasticity, Plasticity
	YoungsModulus float64            `yaml:"YoungsModulus"`
	PoissonRatio  float64            `yaml:"PoissonRatio"`
	YieldStress   float64            `yaml:"YieldStress"`
	Cells         []int              `yaml:"Cells"`   // cells per direction, 3 entries
	Extents       []float64          `yaml:"Extents"` // box dimensions, 3 entries
	LoadSteps     int                `yaml:"LoadSteps"`
	MaxStrain     float64            `yaml:"MaxStrain"`
	BCs           map[string]float64 `yaml:"BCs"` // named boundary values, e.g. Traction, FixedValue
}

func (ip *InputParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.Validate()
}

func (ip *InputParameters) Validate() error {
	if len(ip.Cells) != 3 {
		return fmt.Errorf("Cells must have 3 entries, got %d", len(ip.Cells))
	}
	if len(ip.Extents) != 3 {
		return fmt.Errorf("Extents must have 3 entries, got %d", len(ip.Extents))
	}
	if ip.LoadSteps < 1 {
		ip.LoadSteps = 1
	}
	return nil
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Physics\n", ip.Physics)
	fmt.Printf("%8.5g\t\t= YoungsModulus\n", ip.YoungsModulus)
	fmt.Printf("%8.5f\t\t= PoissonRatio\n", ip.PoissonRatio)
	fmt.Printf("%8.5g\t\t= YieldStress\n", ip.YieldStress)
	fmt.Printf("%v\t\t= Cells\n", ip.Cells)
	fmt.Printf("%v\t= Extents\n", ip.Extents)
	fmt.Printf("[%d]\t\t\t= LoadSteps\n", ip.LoadSteps)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
