package planner

import "fmt"

const (
	LanguagePolish  = "pl"
	LanguageEnglish = "en"
)

// Localize renders the message shown to users, naming the failing segment or constraint
func (e *PlanningError) Localize(language string) string {
	segment := e.Segment + 1

	if language == LanguageEnglish {
		switch e.Kind {
		case ErrorKindUnknownPlace:
			return fmt.Sprintf("Place \"%s\" was not found. Pick one of the suggestions.", e.Text)
		case ErrorKindTooManyTransfers:
			return fmt.Sprintf("%d via stops were given but at most %d transfers are allowed. Only the first %d were used.", e.Requested, e.Allowed, e.Allowed)
		case ErrorKindNoConnection:
			return fmt.Sprintf("No connection found for segment %d: %s → %s.", segment, e.From, e.To)
		case ErrorKindNoFeasibleTransfer:
			return fmt.Sprintf("Segment %d (%s → %s) has no departure leaving at least %d minutes after the previous arrival. Lower the minimum transfer time or change the date.", segment, e.From, e.To, e.MinTransfer)
		case ErrorKindProviderUnavailable:
			return "The schedules service is unavailable. Try again later."
		case ErrorKindEstimated:
			return "The schedules service is unavailable, showing an offline estimate with approximate prices and durations."
		case ErrorKindRateUnavailable:
			return fmt.Sprintf("Could not fetch the exchange rate for %s.", e.Currency)
		case ErrorKindSamePlace:
			return "Origin and destination are the same place."
		case ErrorKindUnconvertedCurrency:
			return fmt.Sprintf("Some prices are shown in %s because conversion to the selected currency is not supported.", e.Currency)
		case ErrorKindInvalidRequest:
			return fmt.Sprintf("Invalid search parameter: %s.", e.Text)
		}
		return e.Error()
	}

	switch e.Kind {
	case ErrorKindUnknownPlace:
		return fmt.Sprintf("Nie znaleziono miejsca „%s”. Wybierz pozycję z podpowiedzi.", e.Text)
	case ErrorKindTooManyTransfers:
		return fmt.Sprintf("Podano %d przystanków pośrednich, a limit przesiadek to %d. Użyto tylko pierwszych %d.", e.Requested, e.Allowed, e.Allowed)
	case ErrorKindNoConnection:
		return fmt.Sprintf("Brak połączeń na odcinku %d: %s → %s.", segment, e.From, e.To)
	case ErrorKindNoFeasibleTransfer:
		return fmt.Sprintf("Na odcinku %d (%s → %s) nie ma odjazdu co najmniej %d min po poprzednim przyjeździe. Skróć minimalny czas przesiadki lub zmień datę.", segment, e.From, e.To, e.MinTransfer)
	case ErrorKindProviderUnavailable:
		return "Serwis rozkładów jest niedostępny. Spróbuj ponownie później."
	case ErrorKindEstimated:
		return "Serwis rozkładów jest niedostępny, pokazano szacunek offline z orientacyjnymi cenami i czasami."
	case ErrorKindRateUnavailable:
		return fmt.Sprintf("Nie udało się pobrać kursu waluty %s.", e.Currency)
	case ErrorKindSamePlace:
		return "Miejsce startu i celu jest takie samo."
	case ErrorKindUnconvertedCurrency:
		return fmt.Sprintf("Część cen pokazano w %s, bo przeliczenie na wybraną walutę nie jest obsługiwane.", e.Currency)
	case ErrorKindInvalidRequest:
		return fmt.Sprintf("Nieprawidłowy parametr wyszukiwania: %s.", e.Text)
	}
	return e.Error()
}
