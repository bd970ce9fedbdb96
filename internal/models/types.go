package models

// TypeInfo is the display metadata attached to a funnel stage.
type TypeInfo struct {
	Code       ContentType `json:"code"`
	Label      string      `json:"label"`
	Stage      string      `json:"stage"`
	PrimaryKPI string      `json:"primary_kpi"`
}

var typeInfo = map[ContentType]TypeInfo{
	TypeC1: {Code: TypeC1, Label: "C1 - Follower acquisition", Stage: "acquisition", PrimaryKPI: "cost_per_follower"},
	TypeC2: {Code: TypeC2, Label: "C2 - Nurture (awareness)", Stage: "awareness", PrimaryKPI: "cost_per_engagement"},
	TypeC3: {Code: TypeC3, Label: "C3 - Nurture (consideration)", Stage: "consideration", PrimaryKPI: "cost_per_engagement"},
	TypeC4: {Code: TypeC4, Label: "C4 - Nurture (conversion)", Stage: "conversion", PrimaryKPI: "cost_per_engagement"},
}

func LookupType(code ContentType) (TypeInfo, bool) {
	info, ok := typeInfo[code]
	return info, ok
}

func AllTypeInfo() []TypeInfo {
	items := make([]TypeInfo, 0, len(ContentTypes))
	for _, code := range ContentTypes {
		items = append(items, typeInfo[code])
	}
	return items
}
