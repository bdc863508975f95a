package intakeparser

// medicineAlias maps a canonical lowercase medicine name to its known
// spelling variants (brand names, common misspellings). The table is a slice
// because iteration order is significant: the first entry whose variant
// matches wins when several could.
type medicineAlias struct {
	Canonical string
	Variants  []string
}

var medicineAliases = []medicineAlias{
	{"paracetamol", []string{"paracetamol", "tylenol", "acetaminophen", "paracitamol"}},
	{"ibuprofen", []string{"ibuprofen", "advil", "motrin", "brufen"}},
	{"aspirin", []string{"aspirin", "aspirine", "acetylsalicylic"}},
	{"amoxicillin", []string{"amoxicillin", "amoxycillin", "amoxy"}},
	{"metformin", []string{"metformin", "glucophage"}},
	{"omeprazole", []string{"omeprazole", "prilosec"}},
	{"lisinopril", []string{"lisinopril", "prinivil", "zestril"}},
	{"atorvastatin", []string{"atorvastatin", "lipitor"}},
	{"amlodipine", []string{"amlodipine", "norvasc"}},
	{"metoprolol", []string{"metoprolol", "lopressor"}},
	{"losartan", []string{"losartan", "cozaar"}},
	{"gabapentin", []string{"gabapentin", "neurontin"}},
	{"hydrochlorothiazide", []string{"hydrochlorothiazide", "hctz"}},
	{"sertraline", []string{"sertraline", "zoloft"}},
	{"simvastatin", []string{"simvastatin", "zocor"}},
	{"vitamin d", []string{"vitamin d", "vit d", "cholecalciferol"}},
	{"vitamin c", []string{"vitamin c", "vit c", "ascorbic acid"}},
	{"insulin", []string{"insulin", "humalog", "novolog"}},
	{"levothyroxine", []string{"levothyroxine", "synthroid"}},
	{"clopidogrel", []string{"clopidogrel", "plavix"}},
}

// formKeywords maps each medicine form to the keywords that imply it. Order
// matters for tie-breaking, same as the alias table.
var formKeywords = []struct {
	Form     string
	Keywords []string
}{
	{"tablet", []string{"tablet", "tab", "pill"}},
	{"capsule", []string{"capsule", "cap"}},
	{"syrup", []string{"syrup", "liquid", "solution"}},
	{"injection", []string{"injection", "inject", "vial"}},
	{"cream", []string{"cream", "ointment", "gel"}},
	{"drops", []string{"drops", "eye drops", "ear drops"}},
	{"inhaler", []string{"inhaler", "puff"}},
	{"patch", []string{"patch", "transdermal"}},
}
