package types

// Answer fields with a fixed meaning for choice resolution and aggregation.
const (
	FIELD_COUNTRY           = "selected_country"
	FIELD_CONSENT           = "consent"
	FIELD_AGE_GROUP         = "b2_age"
	FIELD_TOP_OF_MIND       = "c1_top_of_mind"
	FIELD_AWARE_BANKS       = "c3_aware_banks"
	FIELD_EVER_USED         = "c4_ever_used"
	FIELD_CURRENTLY_USING   = "c5_currently_using"
	FIELD_MAIN_BANK         = "c6_main_bank"
	FIELD_COMMITTED         = "d6_committed"
	FIELD_FAVOURITES        = "d7_favors"
	FIELD_WOULD_CONSIDER    = "d8_potential"
	FIELD_INTERESTED_UNSURE = "d8b_interested_unsure"
	FIELD_NEVER_CONSIDER    = "d9_rejectors"
	FIELD_RECOMMENDATION    = "d11_nps"
	FIELD_GENDER            = "e3_gender"
)

const (
	CHOICE_VALUE_NONE      = "none"
	CHOICE_VALUE_DONT_KNOW = "dont_know"
)
