package diagnostic

// Code namespace (§6). Every code, including the numbered MBEL-* families,
// is enumerated here as a named constant, and the analyzer refers to codes
// through these constants.
const (
	CodeUnknownCharacter = "UNKNOWN_CHARACTER"
	CodeInvalidNumber    = "INVALID_NUMBER"
	CodeUnclosedSection  = "UNCLOSED_SECTION"
	CodeUnclosedMetadata = "UNCLOSED_METADATA"
	CodeUnclosedNote     = "UNCLOSED_NOTE"
	CodeUnclosedVariant  = "UNCLOSED_VARIANT"
	CodeUnexpectedToken  = "UNEXPECTED_TOKEN"
	CodeExpectedToken    = "EXPECTED_TOKEN"

	CodeArticleUsage       = "ARTICLE_USAGE"
	CodeNonCamelCase       = "NON_CAMEL_CASE"
	CodeLowercaseSection   = "LOWERCASE_SECTION"
	CodeUnusedSection      = "UNUSED_SECTION"
	CodeDuplicateSection   = "DUPLICATE_SECTION"
	CodeDuplicateAttribute = "DUPLICATE_ATTRIBUTE"
	CodeMissingVersion     = "MISSING_VERSION"
	CodePreferOperator     = "PREFER_OPERATOR"

	CodeTypoArrow        = "MBEL-TYPO-001"
	CodeTypoFatArrow     = "MBEL-TYPO-002"
	CodeTypoLeftArrow    = "MBEL-TYPO-003"
	CodeTypoDoubleArrow  = "MBEL-TYPO-004"
	CodeTypoEmDash       = "MBEL-TYPO-005"
	CodeTypoCurlyQuote   = "MBEL-TYPO-006"
	CodeTypoEllipsis     = "MBEL-TYPO-007"

	CodeLinkMissingName        = "MBEL-LINK-001"
	CodeLinkInvalidName        = "MBEL-LINK-002"
	CodeLinkDuplicateName      = "MBEL-LINK-003"
	CodeLinkInvalidGlob        = "MBEL-LINK-004"
	CodeLinkInvalidLineRange   = "MBEL-LINK-005"
	CodeLinkLineRangeInverted  = "MBEL-LINK-006"
	CodeLinkUndefinedReference = "MBEL-LINK-007"
	CodeLinkSelfReference      = "MBEL-LINK-008"
	CodeLinkCycle              = "MBEL-LINK-009"
	CodeLinkOrphan             = "MBEL-LINK-010"

	CodeAnchorEmptyPath        = "MBEL-ANCHOR-001"
	CodeAnchorSpacesInPath     = "MBEL-ANCHOR-002"
	CodeAnchorDuplicate        = "MBEL-ANCHOR-003"
	CodeAnchorEmptyDescription = "MBEL-ANCHOR-004"
	CodeAnchorInvalidGlob      = "MBEL-ANCHOR-005"

	CodeDecisionEmptyName           = "MBEL-DECISION-001"
	CodeDecisionDuplicate           = "MBEL-DECISION-002"
	CodeDecisionInvalidStatus       = "MBEL-DECISION-003"
	CodeDecisionSupersededNoTarget  = "MBEL-DECISION-004"
	CodeDecisionDanglingSupersededBy = "MBEL-DECISION-005"
	CodeDecisionMissingReason       = "MBEL-DECISION-006"
	CodeDecisionEmptyReason         = "MBEL-DECISION-007"
	CodeDecisionEmptyTradeoff       = "MBEL-DECISION-008"
	CodeDecisionContextSpaces       = "MBEL-DECISION-009"

	CodeHeatEmptyPath     = "MBEL-HEAT-001"
	CodeHeatInvalidPath   = "MBEL-HEAT-002"
	CodeHeatDuplicate     = "MBEL-HEAT-003"
	CodeHeatInvalidGlob   = "MBEL-HEAT-004"
	CodeHeatNonNumeric    = "MBEL-HEAT-005"
	CodeHeatEmptyScalar   = "MBEL-HEAT-006"

	CodeIntentEmptyModule    = "MBEL-INTENT-001"
	CodeIntentEmptyComponent = "MBEL-INTENT-002"
	CodeIntentDuplicate      = "MBEL-INTENT-003"
	CodeIntentEmptyClause    = "MBEL-INTENT-004"
	CodeIntentEmptyExtends   = "MBEL-INTENT-005"
)
