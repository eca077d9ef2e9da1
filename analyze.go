package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/soil-health-scanner/dto"
	"github.com/Aashish23092/soil-health-scanner/utils/nutrient"
)

type analyzeOutput struct {
	Crop            dto.Crop             `json:"crop"`
	FarmSize        float64              `json:"farm_size"`
	SoilValues      dto.SoilValues       `json:"soil_values"`
	Deficiencies    []dto.Deficiency     `json:"deficiencies"`
	Recommendations []dto.Recommendation `json:"recommendations"`
	TotalCost       float64              `json:"total_cost"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Grade soil readings for a crop and price a fertilizer plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		cropName, _ := f.GetString("crop")
		farmSize, _ := f.GetFloat64("farm-size")

		req := dto.VerifyRequest{FarmSize: farmSize}
		req.SoilValues.N, _ = f.GetFloat64("n")
		req.SoilValues.P, _ = f.GetFloat64("p")
		req.SoilValues.K, _ = f.GetFloat64("k")
		req.SoilValues.OC, _ = f.GetFloat64("oc")
		req.SoilValues.PH, _ = f.GetFloat64("ph")
		if err := req.Validate(); err != nil {
			return err
		}

		crop, err := nutrient.ParseCrop(cropName)
		if err != nil {
			return err
		}

		defs, recs, err := nutrient.Plan(req.SoilValues, crop, farmSize)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analyzeOutput{
			Crop:            crop,
			FarmSize:        farmSize,
			SoilValues:      req.SoilValues,
			Deficiencies:    defs,
			Recommendations: recs,
			TotalCost:       nutrient.TotalCost(recs),
		})
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.String("crop", "", "crop to grade against (Wheat, Rice, Cotton, Maize)")
	f.Float64("farm-size", 1, "farm size in acres")
	f.Float64("n", 0, "available nitrogen, kg/ha")
	f.Float64("p", 0, "available phosphorus, kg/ha")
	f.Float64("k", 0, "available potassium, kg/ha")
	f.Float64("oc", 0, "organic carbon, %")
	f.Float64("ph", 0, "soil pH")
	_ = analyzeCmd.MarkFlagRequired("crop")
	rootCmd.AddCommand(analyzeCmd)
}
