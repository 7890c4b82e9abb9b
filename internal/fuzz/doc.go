// Package fuzztests houses Go fuzz harnesses for the ramen front end and the
// whole compile pipeline. Цель: ловить паники и зависания на произвольных
// входах.
//
// Сиды берутся из golden-кейсов driver/testdata и из коротких фрагментов
// языка ниже.
package fuzztests
