package models

// Weather is the current-plus-forecast payload served to the UI.
type Weather struct {
	Current CurrentConditions `json:"current"`
	Daily   []DailyForecast   `json:"daily"`
}

// CurrentConditions describes the weather at a coordinate right now.
type CurrentConditions struct {
	Temp      float64            `json:"temp"`
	FeelsLike float64            `json:"feels_like"`
	Humidity  int                `json:"humidity"`
	Weather   []WeatherCondition `json:"weather"`
}

// DailyForecast is one day of the multi-day forecast.
type DailyForecast struct {
	Date    int64              `json:"dt"` // unix seconds
	TempMin float64            `json:"temp_min"`
	TempMax float64            `json:"temp_max"`
	Weather []WeatherCondition `json:"weather"`
}

// WeatherCondition is a short textual description of conditions.
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
