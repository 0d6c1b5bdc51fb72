package geo

// kenyaCounties are approximate centroids of Kenya's 47 counties, keyed by
// the normalized names used in the price table.
var kenyaCounties = [...]County{
	{"baringo", Coordinate{0.6411, 36.0915}},
	{"bomet", Coordinate{-0.7826, 35.3027}},
	{"bungoma", Coordinate{0.5685, 34.5584}},
	{"busia", Coordinate{0.4694, 34.0901}},
	{"elgeyo marakwet", Coordinate{1.1436, 35.4786}},
	{"embu", Coordinate{-0.5399, 37.4570}},
	{"garissa", Coordinate{-0.4532, 39.6460}},
	{"homa bay", Coordinate{-0.5272, 34.4571}},
	{"isiolo", Coordinate{0.3524, 37.5822}},
	{"kajiado", Coordinate{-1.8238, 36.7768}},
	{"kakamega", Coordinate{0.2827, 34.7519}},
	{"kericho", Coordinate{-0.3673, 35.2833}},
	{"kiambu", Coordinate{-1.0333, 36.6500}},
	{"kilifi", Coordinate{-3.5107, 39.9093}},
	{"kirinyaga", Coordinate{-0.6590, 37.3827}},
	{"kisii", Coordinate{-0.6817, 34.7666}},
	{"kisumu", Coordinate{-0.0917, 34.7679}},
	{"kitui", Coordinate{-1.3743, 38.0106}},
	{"kwale", Coordinate{-4.1833, 39.4500}},
	{"laikipia", Coordinate{0.2922, 36.7928}},
	{"lamu", Coordinate{-2.2741, 40.9027}},
	{"machakos", Coordinate{-1.5177, 37.2634}},
	{"makueni", Coordinate{-1.8044, 37.6200}},
	{"mandera", Coordinate{3.9376, 41.8569}},
	{"marsabit", Coordinate{2.3264, 38.4368}},
	{"meru", Coordinate{0.0471, 37.6498}},
	{"migori", Coordinate{-1.0634, 34.4731}},
	{"mombasa", Coordinate{-4.0435, 39.6682}},
	{"muranga", Coordinate{-0.7833, 37.1500}},
	{"nairobi city", Coordinate{-1.286389, 36.817223}},
	{"nakuru", Coordinate{-0.3031, 36.0800}},
	{"nandi", Coordinate{0.2104, 35.2544}},
	{"narok", Coordinate{-1.1041, 35.8713}},
	{"nyamira", Coordinate{-0.5631, 34.9341}},
	{"nyandarua", Coordinate{-0.1806, 36.5561}},
	{"nyeri", Coordinate{-0.4167, 36.9500}},
	{"samburu", Coordinate{1.1626, 36.7202}},
	{"siaya", Coordinate{0.0612, 34.2422}},
	{"taita-taveta", Coordinate{-3.3169, 38.4840}},
	{"tana river", Coordinate{-1.1917, 40.1394}},
	{"tharaka nithi", Coordinate{-0.2579, 37.9294}},
	{"trans nzoia", Coordinate{1.0157, 34.9869}},
	{"turkana", Coordinate{3.3120, 35.5658}},
	{"uasin gishu", Coordinate{0.4532, 35.3027}},
	{"vihiga", Coordinate{0.0707, 34.7282}},
	{"wajir", Coordinate{1.7500, 40.0500}},
	{"west pokot", Coordinate{1.3057, 35.3646}},
}
