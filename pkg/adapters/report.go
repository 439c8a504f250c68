package adapters

import (
	"fmt"
	"strconv"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/store/pricing"
	"github.com/de-tools/gpu-atlas/pkg/store/throughput"
	"github.com/shopspring/decimal"
)

const currency = "USD"

func money(d decimal.Decimal) string {
	if d.IsZero() || d.Abs().GreaterThanOrEqual(decimal.New(1, -2)) {
		return d.StringFixed(2)
	}
	return d.StringFixed(6)
}

func detail(name string, value interface{}, unit, desc string) domain.ReportDetail {
	return domain.ReportDetail{Name: name, Value: value, Unit: unit, Description: desc}
}

func MapTrainingEstimateToReport(est *domain.TrainingEstimate) *domain.Report {
	w := est.Workload
	report := &domain.Report{
		Title: "Training Cost Estimate",
		Inputs: []domain.ReportDetail{
			detail("Model Size", string(w.ModelSize), "", ""),
			detail("Dataset Size", w.DatasetSize, "samples", ""),
			detail("Epochs", w.Epochs, "", ""),
			detail("GPU", w.GPU, "", ""),
			detail("Platform", w.Platform, "", ""),
			detail("PEFT", strconv.FormatBool(w.PEFT), "", ""),
			detail("Mixed Precision", strconv.FormatBool(w.MixedPrecision), "", ""),
		},
		TotalAmount: toFloat(est.Cost.TotalCost),
		Currency:    currency,
	}

	report.Sections = append(report.Sections,
		domain.ReportSection{
			Title: "Time",
			Details: []domain.ReportDetail{
				detail("Total Tokens", est.TotalTokens, "tokens", fmt.Sprintf("%d tokens per sample", domain.AvgTokensPerSample)),
				detail("Throughput", est.Throughput.String(), "tok/s", "after optimizations"),
				detail("Training Time", est.TrainingSeconds.StringFixed(0), "seconds", ""),
				detail("Estimated Hours", est.EstimatedHours.StringFixed(2), "hours", ""),
			},
		},
		domain.ReportSection{
			Title: "Cost Breakdown",
			Details: []domain.ReportDetail{
				detail("Hourly Rate", money(est.HourlyRate), currency, w.Platform+" "+w.GPU),
				detail("Compute Cost", money(est.Cost.ComputeCost), currency, ""),
				detail("Storage Cost", money(est.Cost.StorageCost), currency, "checkpoint storage"),
				detail("Total Cost", money(est.Cost.TotalCost), currency, ""),
			},
			Summary: map[string]interface{}{
				"Covered By Free Credits": est.CoveredByFreeCredits,
			},
		},
		domain.ReportSection{
			Title: "Cost Optimizations",
			Details: []domain.ReportDetail{
				detail("With PEFT", money(est.Optimizations.WithPEFT), currency, "flat 50% heuristic"),
				detail("Savings", money(est.Optimizations.Savings), currency, ""),
			},
		},
	)

	if len(est.AlternativePlatforms) > 0 {
		section := domain.ReportSection{Title: "Alternative Platforms"}
		for _, alt := range est.AlternativePlatforms {
			section.Details = append(section.Details,
				detail(alt.Platform, money(alt.Cost), currency, "at "+money(alt.HourlyRate)+"/hr"))
		}
		report.Sections = append(report.Sections, section)
	}

	if len(est.Warnings) > 0 {
		section := domain.ReportSection{Title: "Warnings"}
		for _, warning := range est.Warnings {
			section.Details = append(section.Details, detail("Warning", "", "", warning))
		}
		report.Sections = append(report.Sections, section)
	}

	return report
}

func MapInferenceEstimateToReport(est *domain.InferenceEstimate) *domain.Report {
	w := est.Workload
	report := &domain.Report{
		Title: "Inference Cost Estimate",
		Inputs: []domain.ReportDetail{
			detail("Requests Per Day", w.RequestsPerDay, "requests", ""),
			detail("Avg Latency", strconv.FormatFloat(w.AvgLatencySeconds, 'f', -1, 64), "seconds", ""),
			detail("GPU", w.GPU, "", ""),
			detail("Platform", w.Platform, "", ""),
			detail("Deployment", string(w.Deployment), "", ""),
			detail("Batch Inference", strconv.FormatBool(w.BatchInference), "", ""),
		},
		TotalAmount: toFloat(est.Cost.MonthlyCost),
		Currency:    currency,
	}

	report.Sections = append(report.Sections, domain.ReportSection{
		Title: "Cost Breakdown",
		Details: []domain.ReportDetail{
			detail("Rate", est.Rate.Amount.String(), currency, string(est.Rate.Per)),
			detail("Effective Latency", est.EffectiveLatency.String(), "seconds", "per request"),
			detail("Daily Compute", est.Cost.DailyComputeSeconds.StringFixed(2), "seconds", ""),
			detail("Daily Cost", money(est.Cost.DailyCost), currency, ""),
			detail("Monthly Cost", money(est.Cost.MonthlyCost), currency, "30 days"),
			detail("Cost Per Request", est.Cost.CostPerRequest.StringFixed(6), currency, ""),
		},
	})

	scaling := domain.ReportSection{Title: "Scaling Analysis"}
	for _, p := range est.Scaling {
		scaling.Details = append(scaling.Details,
			detail(fmt.Sprintf("%d req/day", p.RequestsPerDay), money(p.MonthlyCost), currency,
				"daily "+money(p.DailyCost)))
	}
	report.Sections = append(report.Sections, scaling)

	dedicated := domain.ReportSection{Title: "Dedicated Alternative"}
	if alt := est.DedicatedAlternative; alt.Available {
		dedicated.Details = append(dedicated.Details, detail("Monthly Cost", money(alt.MonthlyCost), currency, "always-on instance"))
		if alt.BreakEvenRequestsPerDay != nil {
			dedicated.Details = append(dedicated.Details,
				detail("Break-even", alt.BreakEvenRequestsPerDay.Ceil().String(), "req/day", "dedicated is cheaper above this volume"))
		}
	} else {
		dedicated.Details = append(dedicated.Details, detail("Monthly Cost", "n/a", "", "no dedicated price for this GPU"))
	}
	report.Sections = append(report.Sections, dedicated)

	return report
}

func MapComparisonToReport(res *domain.ComparisonResult) *domain.Report {
	report := &domain.Report{
		Title: "Platform Comparison",
		Inputs: []domain.ReportDetail{
			detail("GPU", res.GPU, "", ""),
			detail("Hours", res.Hours.String(), "hours", ""),
		},
		TotalAmount: toFloat(res.Cheapest.Cost),
		Currency:    currency,
	}

	section := domain.ReportSection{
		Title:   "Platforms",
		Summary: map[string]interface{}{"Cheapest": res.Cheapest.Platform},
	}
	for _, p := range res.Platforms {
		if !p.Available {
			section.Details = append(section.Details, detail(p.Platform, "unavailable", "", "gpu not offered"))
			continue
		}
		desc := "cheapest"
		if p.Platform != res.Cheapest.Platform {
			desc = fmt.Sprintf("%s more (%s%%)", money(p.Savings), p.SavingsPercentage.StringFixed(1))
		}
		section.Details = append(section.Details, detail(p.Platform, money(p.Cost), currency, desc))
	}
	report.Sections = append(report.Sections, section)

	return report
}

func MapHoursConversionToReport(conv *domain.HoursConversion) *domain.Report {
	report := &domain.Report{
		Title: "GPU Hours",
		Inputs: []domain.ReportDetail{
			detail("GPU", conv.GPU, "", ""),
			detail("Budget", money(conv.Budget), currency, ""),
		},
		TotalAmount: toFloat(conv.Budget),
		Currency:    currency,
	}

	section := domain.ReportSection{Title: "Hours Per Platform"}
	for _, p := range conv.Platforms {
		desc := "at " + money(p.HourlyRate) + "/hr"
		if p.FreeCreditHours.IsPositive() {
			desc += fmt.Sprintf(", free credits cover %s hours", p.FreeCreditHours.StringFixed(1))
		}
		section.Details = append(section.Details, detail(p.Platform, p.Hours.StringFixed(2), "hours", desc))
	}
	report.Sections = append(report.Sections, section)

	return report
}

func MapCatalogToReport(store pricing.Store, tp throughput.Model) *domain.Report {
	report := &domain.Report{Title: "Rate Catalog", Currency: currency}

	platforms := domain.ReportSection{Title: "Platforms"}
	for _, p := range store.Platforms() {
		desc := string(p.Billing) + ", billed " + string(p.Granularity)
		if p.HasFreeCredits() {
			desc += ", free credits " + money(p.FreeCredits)
		}
		platforms.Details = append(platforms.Details, detail(p.ID, string(p.Billing), "", desc))
	}

	gpus := domain.ReportSection{Title: "GPUs"}
	for _, g := range store.GPUs() {
		gpus.Details = append(gpus.Details, detail(g.ID, g.VRAMGB, "GB", "VRAM"))
	}

	rates := domain.ReportSection{Title: "Rates"}
	for _, r := range store.Rates() {
		for _, price := range r.Prices() {
			rates.Details = append(rates.Details,
				detail(r.Platform+"/"+r.GPU, price.Amount.String(), currency, string(price.Per)))
		}
	}

	speeds := domain.ReportSection{Title: "Throughput"}
	for _, e := range tp.Entries() {
		speeds.Details = append(speeds.Details,
			detail(e.GPU+"/"+string(e.ModelSize), e.TokensPerSecond.String(), "tokens/sec", string(e.Tier)))
	}

	report.Sections = append(report.Sections, platforms, gpus, rates, speeds)
	return report
}
