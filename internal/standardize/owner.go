package standardize

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/sells-group/shipdata/internal/model"
)

// ownerSuffixes are legal-entity forms stripped from owner names. Order
// matters: earlier alternatives win at the same position.
var ownerSuffixes = []string{
	`CO LTD`, `COLTD`, `COMPANY LTD`, `CO LIMITED`, `COMPANY LIMITED`, `CO LIMTED`, `CO LTTD`, `CV LIMITADA`,
	`LTD SA$`, `LTD S A$`, `CO SA$`, `CO S A$`, `CO AB$`, `CO A B$`, `CO PTY LTD$`, `CO LRD$`,
	`PTY LIMITED$`, `PTY LTD$`, `SA PTY LTD$`, `CORP LTD$`, `LTDA EPP$`, `JOINT STOCK COMPANY$`,
	`JOINTSTOCK COMPANY$`, `CORPORATION PTE LTD$`, `CORPORATION PTE$`, `CORP PTE$`, `CORP SA$`,
	`CORP INC$`, `CORPORATION$`, `CORP$`, `INCORPORATED$`, `INC$`, `AP PTE LTD`, `CO PTE LTD`,
	`GMBH CO`, `GMBH$`, `LTD$`, `LTDA$`, `LIMITED$`, `PTE$`, `LIMITADA$`, `LDA$`, `LLC$`,
	`COMPANY NV$`, `COMPANY N V$`, `COMPANY BV$`, `COMPANY B V$`, `CO BV$`, `CO B V$`, `CO NV$`,
	`CO N V$`, `SA DE CV$`, `S A DE C V$`, `SCL DE CV$`, `S C L DE C V$`, `SCL$`, `S C L$`,
	`S C DE R L$`, `S R L DE C V$`, `SAC$`, `S A C$`, `EIRL$`, `E I R L$`, `SRL$`, `S R L$`,
	` CIA$`, `EURL$`, `^EURL`, `SARL$`, `^SARL`, `SNC$`, `^SNC`, `SPC$`, `^SPC`, `SPA$`,
	`SAS$`, ` SA$`, ` S A$`, ` SL$`, ` S L$`, ` SC$`, ` S C$`, `CO WLL$`, `CO LIB$`,
	` AS$`, ` A S$`, `PJSC$`, `P JSC$`, `OJSC$`, `CJSC$`, `JSC$`, ` EPP$`, ` CB$`, ` C B$`,
	` CA$`, ` C A$`, ` GIE$`, `KABUSHIKI KAISHA$`, ` KK$`, `K K$`, ` BV$`, ` B V$`,
	`YUGEN KAISHA`, `YUGEN`, `KAISHA`, `KAISYA`, `YUGEN KAISYA`, `GYOGYO`, `GYOGYOU`, `GAISHA`, ` JU$`,
	`OOO$`, `^OOO`, `CO PVT$`, `COMPANY PVT$`, ` PT$`, ` P T$`, `^PT`, ` CC$`,
	` CO$`, `COMPANY$`, ` NV$`, ` N V$`, `^NA$`, `^N A$`, `RPTD SOLD.*`, `OWNER UNKNOWN*`,
	`CO LT`, `EHF$`, `^EHF`,
}

var (
	ownerSuffixRe = regexp.MustCompile(strings.Join(ownerSuffixes, "|"))
	ownerParenRe  = regexp.MustCompile(`\(.+\)`)
	ownerPunctRe  = regexp.MustCompile(`[^\w]+`)
	fisheryRe     = regexp.MustCompile(`FISHERY`)
)

// Owner standardizes a vessel owner or operator name. Parenthesized text,
// punctuation and legal-entity forms such as CO LTD or S A DE C V are
// removed, and FISHERY becomes FISHERIES.
func Owner(s string) model.Optional[string] {
	up, ok := Str(s).Get()
	if !ok {
		return model.None[string]()
	}

	up = strings.TrimSpace(unidecode.Unidecode(ownerParenRe.ReplaceAllString(up, " ")))
	up = strings.TrimSpace(ownerPunctRe.ReplaceAllString(up, " "))
	up = ownerSuffixRe.ReplaceAllString(up, " ")
	up = strings.Join(strings.Fields(up), " ")
	up = fisheryRe.ReplaceAllString(up, "FISHERIES")
	if up == "" {
		return model.None[string]()
	}
	return model.Some(up)
}
