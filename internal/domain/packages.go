package domain

import "strings"

// PackageSpec describes one physical box handed to the carrier.
type PackageSpec struct {
	WeightKg float64
	LengthCm int
	WidthCm  int
	HeightCm int
}

// productFamily maps a product-name token to the fixed boxes that family
// ships in. Matching is case-insensitive substring, first entry wins.
type productFamily struct {
	token string
	boxes []PackageSpec
}

// packageTable is ordered: more specific tokens come before shorter ones.
var packageTable = []productFamily{
	{token: "filmraid-12", boxes: []PackageSpec{
		{WeightKg: 9, LengthCm: 50, WidthCm: 40, HeightCm: 25},
		{WeightKg: 9, LengthCm: 50, WidthCm: 40, HeightCm: 25},
	}},
	{token: "filmraid-8", boxes: []PackageSpec{
		{WeightKg: 12, LengthCm: 55, WidthCm: 45, HeightCm: 25},
	}},
	{token: "filmraid-4", boxes: []PackageSpec{
		{WeightKg: 7.5, LengthCm: 45, WidthCm: 35, HeightCm: 20},
	}},
	{token: "filmraid-2", boxes: []PackageSpec{
		{WeightKg: 4.5, LengthCm: 35, WidthCm: 30, HeightCm: 15},
	}},
}

// defaultPackage covers products with no entry in the table.
var defaultPackage = PackageSpec{WeightKg: 3, LengthCm: 30, WidthCm: 25, HeightCm: 15}

// ExpandPackages maps cart line items to carrier packages. Every line item
// yields at least one package; unrecognized names get the default box.
func ExpandPackages(items []LineItem) []PackageSpec {
	packages := make([]PackageSpec, 0, len(items))
	for _, it := range items {
		packages = append(packages, expandItem(it.Name)...)
	}
	return packages
}

func expandItem(name string) []PackageSpec {
	lower := strings.ToLower(name)
	for _, fam := range packageTable {
		if strings.Contains(lower, fam.token) {
			return fam.boxes
		}
	}
	return []PackageSpec{defaultPackage}
}

// TotalWeightKg sums the weights of the expanded packages.
func TotalWeightKg(packages []PackageSpec) float64 {
	var total float64
	for _, p := range packages {
		total += p.WeightKg
	}
	return total
}
