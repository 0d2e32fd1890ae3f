package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"purchase-insight/internal/dataset"
	"purchase-insight/internal/importance"
	"purchase-insight/internal/predict"
	"purchase-insight/internal/profile"
	"purchase-insight/internal/query"
	"purchase-insight/internal/similar"
	"purchase-insight/internal/stats"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func badRequest(w http.ResponseWriter, r *http.Request, msg, field string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: msg, Field: field})
}

type summaryResponse struct {
	TotalRecords int              `json:"total_records"`
	PurchaseRate dataset.OptFloat `json:"purchase_rate"`
	AvgAge       dataset.OptFloat `json:"avg_age"`
	AvgSalary    dataset.OptFloat `json:"avg_salary"`
	AgeGroups    []ageGroupView   `json:"age_groups"`
	Brands       []brandView      `json:"brands"`
	Factors      []factorRateView `json:"factors"`
}

type ageGroupView struct {
	Group string  `json:"group"`
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

type brandView struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

type factorRateView struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum := stats.Summarize(s.ds)

	resp := summaryResponse{
		TotalRecords: sum.Total,
		PurchaseRate: sum.PurchaseRate,
		AvgAge:       sum.AvgAge,
		AvgSalary:    sum.AvgSalary,
		AgeGroups:    []ageGroupView{},
		Brands:       []brandView{},
		Factors:      []factorRateView{},
	}
	for _, g := range stats.AgeGroupRates(s.ds) {
		resp.AgeGroups = append(resp.AgeGroups, ageGroupView{Group: g.Group, Count: g.Count, Rate: g.Rate})
	}
	for _, b := range stats.BrandDistribution(s.ds) {
		resp.Brands = append(resp.Brands, brandView{Brand: b.Brand, Count: b.Count})
	}
	for _, f := range stats.FactorRates(s.ds) {
		resp.Factors = append(resp.Factors, factorRateView{Name: f.Name, Rate: f.Rate})
	}

	render.JSON(w, r, resp)
}

type featureView struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	Percent    float64 `json:"percent"`
}

func (s *Server) handleImportance(w http.ResponseWriter, r *http.Request) {
	top := s.settings.TopFeatures
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(w, r, "top must be a positive integer", "top")
			return
		}
		top = n
	}

	ranked := importance.Rank(s.ds, importance.DefaultFields(), s.policy())
	selected := importance.TopK(ranked, top)
	percents := importance.NormalizePercent(selected)

	features := make([]featureView, 0, len(selected))
	for i, fs := range selected {
		features = append(features, featureView{
			Feature:    fs.Feature,
			Importance: fs.Importance,
			Percent:    percents[i].Percent,
		})
	}
	render.JSON(w, r, map[string]interface{}{"features": features})
}

func (s *Server) policy() importance.Policy {
	p := importance.DefaultPolicy()
	if s.settings.MaxDistinctValues > 0 {
		p.MaxDistinctValues = s.settings.MaxDistinctValues
	}
	if len(s.settings.CategoricalFields) > 0 {
		p.CategoricalColumns = s.settings.CategoricalFields
	}
	return p
}

type predictResponse struct {
	Score   float64       `json:"score"`
	Factors []string      `json:"factors"`
	Input   predict.Input `json:"input"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var in predict.Input
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		badRequest(w, r, "invalid request body", "")
		return
	}
	if r.URL.Query().Get("what_if") == "1" {
		in = predict.ApplyWhatIfDefaults(in)
	}

	if err := in.Validate(); err != nil {
		if s.metrics != nil {
			s.metrics.InputErrorsInc()
		}
		if ie, ok := err.(*predict.InputError); ok {
			badRequest(w, r, ie.Reason, ie.Field)
			return
		}
		badRequest(w, r, err.Error(), "")
		return
	}

	var t predict.MetricsTracker
	if s.metrics != nil {
		t = s.metrics
	}
	score := predict.ScoreWithMetrics(in, t)

	render.JSON(w, r, predictResponse{
		Score:   score,
		Factors: predict.Explain(in, score),
		Input:   in,
	})
}

type matchView struct {
	ID         string         `json:"id"`
	Similarity int            `json:"similarity"`
	Purchased  bool           `json:"purchased"`
	Age        int            `json:"age"`
	Brand      string         `json:"brand"`
	Salary     dataset.OptInt `json:"salary"`
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	var in predict.Input
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		badRequest(w, r, "invalid request body", "")
		return
	}

	k := s.settings.Neighbors
	if v := r.URL.Query().Get("k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(w, r, "k must be a positive integer", "k")
			return
		}
		k = n
	}

	if err := in.Validate(); err != nil {
		if ie, ok := err.(*predict.InputError); ok {
			badRequest(w, r, ie.Reason, ie.Field)
			return
		}
		badRequest(w, r, err.Error(), "")
		return
	}

	var t similar.MetricsTracker
	if s.metrics != nil {
		t = s.metrics
	}
	matches := similar.FindNearestWithMetrics(in, s.ds, k, t)

	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, matchView{
			ID:         m.ID,
			Similarity: m.Similarity,
			Purchased:  m.Purchased,
			Age:        m.Age,
			Brand:      m.Brand,
			Salary:     m.Salary,
		})
	}
	render.JSON(w, r, map[string]interface{}{"matches": views, "k": k})
}

type recordsResponse struct {
	Rows       []recordView `json:"rows"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	TotalRows  int          `json:"total_rows"`
}

type recordView struct {
	ID               string           `json:"id"`
	Age              int              `json:"age"`
	Salary           dataset.OptInt   `json:"salary"`
	Brand            string           `json:"brand"`
	OS               string           `json:"os"`
	TechSavvy        bool             `json:"tech_savvy"`
	OnlineActivity   dataset.OptInt   `json:"online_activity"`
	PrevPurchases    dataset.OptInt   `json:"previous_purchases"`
	LoyaltyScore     dataset.OptInt   `json:"loyalty_score"`
	SessionTime      dataset.OptFloat `json:"session_time"`
	SocialInfluence  dataset.OptInt   `json:"social_influence"`
	WarrantyInterest bool             `json:"warranty_interest"`
	Purchased        bool             `json:"purchased"`
}

func viewOf(rec dataset.Record) recordView {
	return recordView{
		ID:               rec.ID,
		Age:              rec.Age,
		Salary:           rec.Salary,
		Brand:            rec.Brand,
		OS:               rec.OS,
		TechSavvy:        rec.TechSavvy,
		OnlineActivity:   rec.OnlineActivity,
		PrevPurchases:    rec.PrevPurchases,
		LoyaltyScore:     rec.LoyaltyScore,
		SessionTime:      rec.SessionTime,
		SocialInfluence:  rec.SocialInfluence,
		WarrantyInterest: rec.WarrantyInterest,
		Purchased:        rec.Purchased,
	}
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, r, "page must be an integer", "page")
			return
		}
		page = n
	}

	state := query.State{
		Filter: query.Filter(q.Get("filter")),
		Search: q.Get("search"),
		Page:   page,
	}
	if state.Filter == "" {
		state.Filter = query.FilterAll
	}

	var t query.MetricsTracker
	if s.metrics != nil {
		t = s.metrics
	}
	result := query.RunWithMetrics(s.ds, state, s.settings.PageSize, t)

	rows := make([]recordView, 0, len(result.Rows))
	for _, rec := range result.Rows {
		rows = append(rows, viewOf(rec))
	}
	render.JSON(w, r, recordsResponse{
		Rows:       rows,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		TotalRows:  result.TotalRows,
	})
}

type profileResponse struct {
	ID              string     `json:"id"`
	Persona         string     `json:"persona"`
	Score           float64    `json:"score"`
	Recommendations []string   `json:"recommendations"`
	Record          recordView `json:"record"`
}

// inputFromRecord maps a stored record onto the scorer's input. Missing
// optional attributes contribute nothing, matching a form left blank.
func inputFromRecord(rec dataset.Record) predict.Input {
	in := predict.Input{
		Age:              rec.Age,
		Brand:            rec.Brand,
		OS:               rec.OS,
		TechSavvy:        rec.TechSavvy,
		WarrantyInterest: rec.WarrantyInterest,
	}
	if rec.Salary.Valid {
		in.Salary = rec.Salary.Value
	}
	if rec.OnlineActivity.Valid {
		in.OnlineActivity = rec.OnlineActivity.Value
	}
	if rec.PrevPurchases.Valid {
		in.PrevPurchases = rec.PrevPurchases.Value
	}
	if rec.LoyaltyScore.Valid {
		in.LoyaltyScore = rec.LoyaltyScore.Value
	}
	if rec.SessionTime.Valid {
		in.SessionTime = rec.SessionTime.Value
	}
	if rec.SocialInfluence.Valid {
		in.SocialInfluence = rec.SocialInfluence.Value
	}
	return in
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.ds.Find(id)
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: "record not found"})
		return
	}

	persona := profile.Persona(rec)
	render.JSON(w, r, profileResponse{
		ID:              rec.ID,
		Persona:         persona,
		Score:           predict.Score(inputFromRecord(rec)),
		Recommendations: profile.Recommendations(rec, persona),
		Record:          viewOf(rec),
	})
}

type segmentView struct {
	Name         string  `json:"name"`
	Icon         string  `json:"icon"`
	Count        int     `json:"count"`
	PurchaseRate float64 `json:"purchase_rate"`
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	segments := []segmentView{}
	for _, seg := range profile.Segments(s.ds) {
		segments = append(segments, segmentView{
			Name:         seg.Name,
			Icon:         seg.Icon,
			Count:        seg.Count,
			PurchaseRate: seg.PurchaseRate,
		})
	}
	render.JSON(w, r, map[string]interface{}{"segments": segments})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"records": s.ds.Len(),
	})
}
