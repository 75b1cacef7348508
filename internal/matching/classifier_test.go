package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsVacancy_AcceptsPostsWithTwoTriggers(t *testing.T) {

	classifier := NewClassifier(nil, nil)

	assert.True(t, classifier.IsVacancy("Vakansiya: Python developer kerak, maosh kelishilgan holda"))
	assert.True(t, classifier.IsVacancy("Требуется разработчик в компанию, зарплата от 8 млн"))
	assert.True(t, classifier.IsVacancy("We are hiring a senior backend engineer, remote position"))
}

func Test_IsVacancy_SingleTriggerWithEnoughLengthIsAccepted(t *testing.T) {

	classifier := NewClassifier(nil, nil)

	assert.True(t, classifier.IsVacancy("Tajribali mutaxassis izlayapmiz, murojaat uchun shaxsiyga yozing"))
}

func Test_IsVacancy_RejectsShortMessages(t *testing.T) {

	classifier := NewClassifier(nil, nil)

	assert.False(t, classifier.IsVacancy("ish kerak"))
	assert.False(t, classifier.IsVacancy(""))
}

func Test_IsVacancy_ExclusionWordsWinOverTriggers(t *testing.T) {

	classifier := NewClassifier(nil, nil)

	assert.False(t, classifier.IsVacancy("Vakansiya emas: telefon sotaman, narxi kelishiladi, yozing"))
	assert.False(t, classifier.IsVacancy("Реклама: скидка на курсы программирования для разработчиков"))
}

func Test_IsVacancy_RejectsPlainChatter(t *testing.T) {

	classifier := NewClassifier(nil, nil)

	assert.False(t, classifier.IsVacancy("Bugun ob-havo juda yaxshi, hammaga omad tilayman do'stlar"))
}

func Test_IsVacancy_CustomWordListsAreUsed(t *testing.T) {

	classifier := NewClassifier([]string{"lavozim"}, []string{"aksiya"})

	assert.True(t, classifier.IsVacancy("Yangi lavozim uchun nomzodlar qabul qilinadi"))
	assert.False(t, classifier.IsVacancy("Aksiya! Lavozim kursimizga yoziling va yutuqqa ega bo'ling"))
}
