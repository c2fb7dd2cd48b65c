package ro

import "strings"

// stopWords is the Romanian functional-word list, generated from the
// tbl.wordform.ro.v87 lexicon: pronouns, determiners, prepositions,
// conjunctions and other closed-class forms.
var stopWords = makeWordSet(`
	a acea aceasta această aceea aceeași
	acei aceia aceiași acel acela același
	acele acelea aceleași acelei aceleia aceleiași
	acelor acelora acelorași acelui aceluia aceluiași
	acest acesta aceste acestea acestei acesteia
	acești aceștia acestor acestora acestui acestuia
	ăi aia ăia aiasta aiastă aidoma
	ăilalți aista al ăl ăla ălălalt
	alaltă alde ale alea ălei ăleia
	alelalte alor ălor ălora ălorlalți alt
	alta altă altceva altcineva altcuiva alte
	altei alteia altele alteța-voastră alți alții
	altor altora altui altuia altul ălui
	ăluia anumit anumită anumite anumiți anumitor
	apud ar aș ast ăst asta
	astă ăsta aste astea ăstei ăsteia
	ăști ăștia ăștilalți ăstor ăstora ăstui
	ăstuia asupra asupră atât atâta atâtea
	atâți atâția atâtor atâtora ați ăți
	ca că căci cam când care
	cărei căreia careva carevasăzică cari căror
	cărora cărui căruia cât câta câtă
	câtăva câte câtelea câteva câți câțiva
	câtor câtora câtorva către câtva ce
	cea cealaltă ceastălaltă ceea cei ceia
	ceilalți cel cela celălalt cele celea
	celei celeia celeilalte celelalte celor celora
	celorlalte celorlalți celui celuia celuilalt cestălalt
	cesteilalte cestelalte ceștilalți cestorlalte cestorlalți cestuilalt
	ceva chiar ci cine cineva ciu-ciu
	conform contra contrar cu cui cuiva
	cum cutare cutare-cutare cutărei cutăreia cutărescu
	cutăror cutărora cutărui cutăruia dacă dăcât
	d-altă dâm dân dânsa dânsei dânsele
	dânselor dânșii dânșilor dânsul dânsului dar
	dară darămite darmite datorită de de-a
	deasupra decât deci dedesubtul deoarece deși
	despre destui destul destulă destule dicât
	dimprejurul din dinafara dinaintea dinapoia dinăuntrul
	dindărătul dinlăuntru dinlăuntrul dinspre dintre dintru
	dumisale dumitale dumneaei dumnealor dumnealui dumneasa
	dumneata dumneavoastră după ea ei el
	ele eu fără fiecare fiecărei fiecăreia
	fiecărui fiecăruia fiece fiindcă fitecine foarte
	grație iar iară iaste iea iei
	iel iele îi îl îmi împotriva
	împrejurul în înaintea înapoia înăuntrul încât
	încotro îndărătul înde înlăuntrul însa însă
	însămi însăși însăți însele însemi însene
	înseși înseți însevă înșii înșine înșiși
	înșivă înspre însul însumi însuși însuți
	întocmai intra între întru întrucât io
	îs își ista îți jur-împrejurul jurul
	la lângă le li lor lui
	mă mai mata matale matali mea
	mei mele meu mi mie mine
	mult multă multe mulți multor multora
	mulțumită ne necum nema ni nicăierea
	nicăieri nici nicicând nicicum nicidecât nicidecum
	nicio nici-o niciodată niciun nici-un niciuna
	nici-una niciunde niciunei nici-unei niciuneia nici-uneia
	niciunele nici-unele niciunii nici-unii niciunor nici-unor
	niciunora nici-unora niciunui nici-unui niciunuia nici-unuia
	niciunul nici-unul nimănui nimănuia nime nimenea
	nimeni nimic nimica nincs niscai niscaiva
	niște noastră noastre noi noștri nostru
	nouă nu numai-că o oare oarecare
	oarecari oarece oarecine oarecui oareșce oareșicând
	oareșicare oareșicum oi oiu om or
	ori oricare oricărei oricăreia oricăror oricărora
	oricărui oricăruia oricât oricâtă oricâte oricâți
	oricâtor orice oricine oricui orișicare orișicărei
	orișicăreia orișicărui orișicăruia orișicât orișicâtă orișicâte
	orișicâți orișicâtor orișice orișicine orișicui pă
	pân până până-n pân-la paracutare pe
	pentru per peste pi potrivit prea
	precum primprejurul prin printre printru privind
	pro puțin puțină puține puțini puținii
	relativ sa să săi sale sau
	său se si și șî sie
	sieși sii sine sineși spre sub
	ta tăi tale taman tău te
	ți ție tine toată toate toatele
	tot toți toții totu totul totului
	tu tuturor tuturora un una unde
	unei uneia unele unii unor unora
	unu unui unuia unul va vă
	vasăzică vei veți vi via voastră
	voastre voi voiu vom vor voștri
	vostru vouă vreo vre-o vreun vre-un
	vreuna vre-una vreunei vre-unei vreuneia vre-uneia
	vreunele vre-unele vreunii vre-unii vreunor vre-unor
	vreunora vre-unora vreunui vre-unui vreunuia vre-unuia
	vreunul vre-unul
`)

func makeWordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
