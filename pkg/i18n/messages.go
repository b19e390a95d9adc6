package i18n

// Keyed by base language, then by error code from pkg/errors.
var translations = map[string]map[string]string{
	"fr": {
		"VALIDATION_ERROR":          "Données invalides",
		"UNAUTHORIZED":              "Authentification requise",
		"FORBIDDEN":                 "Accès refusé",
		"NOT_FOUND":                 "Ressource introuvable",
		"CONFLICT":                  "Conflit détecté",
		"STATE_CONFLICT":            "Changement de statut non autorisé",
		"IDEMPOTENCY_KEY_REUSED":    "Clé d'idempotence déjà utilisée",
		"RATE_LIMITED":              "Trop de tentatives, réessayez plus tard",
		"INTERNAL_ERROR":            "Erreur interne du serveur",
		"DEPENDENCY_ERROR":          "Service temporairement indisponible",
		"INVALID_DISCOUNT_CODE":     "Code invalide ou expiré",
		"NO_DISCOUNT_OFFERED":       "Ce code n'offre pas de réduction",
		"DISCOUNT_NOT_APPLICABLE":   "Ce code ne s'applique pas aux produits de votre panier",
		"ORDER_NUMBER_UNAVAILABLE":  "Impossible de générer un numéro de commande",
		"ORDER_PARTIALLY_SUBMITTED": "Commande enregistrée sans ses articles, notre équipe a été alertée",
		"ORDER_SUBMISSION_FAILED":   "La commande n'a pas pu être passée",
	},
	"en": {
		"VALIDATION_ERROR":          "Invalid input",
		"UNAUTHORIZED":              "Authentication required",
		"FORBIDDEN":                 "Access denied",
		"NOT_FOUND":                 "Resource not found",
		"CONFLICT":                  "Conflict detected",
		"STATE_CONFLICT":            "Status change not allowed",
		"IDEMPOTENCY_KEY_REUSED":    "Idempotency key already used",
		"RATE_LIMITED":              "Too many attempts, try again later",
		"INTERNAL_ERROR":            "Internal server error",
		"DEPENDENCY_ERROR":          "Service temporarily unavailable",
		"INVALID_DISCOUNT_CODE":     "Invalid or expired code",
		"NO_DISCOUNT_OFFERED":       "This code offers no discount",
		"DISCOUNT_NOT_APPLICABLE":   "This code does not apply to items in your cart",
		"ORDER_NUMBER_UNAVAILABLE":  "Could not generate an order number",
		"ORDER_PARTIALLY_SUBMITTED": "Order recorded without its items, our team has been alerted",
		"ORDER_SUBMISSION_FAILED":   "The order could not be placed",
	},
}
