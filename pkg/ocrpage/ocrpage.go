// Package ocrpage reads the OCR page model out of a win11OneOcr XHTML
// document.
//
// A document holds one or more page sections:
//
//	<section class="win11OneOcrPage" srcName="scan.png" imgWidth="1000" imgHeight="800"
//	         averageConfidence="0.93" ocrWordsCount="2" ocrSegmentsCount="1">
//	  <div class="ocrContent">
//	    <segment>
//	      <w p="0.98" i="0" b="10,20,110,20,110,60,10,60">Hello</w>
//	      <w p="0.41" i="1" b="120,20,220,20,220,60,120,60">World</w>
//	    </segment>
//	  </div>
//	</section>
//
// The package provides:
//
// - Tolerant attribute readers (ReadInt, ReadNumber, ReadPolygon)
// - The immutable page model (PageModel, LineData, WordData, BoundingBox)
// - Confidence classification against configurable Thresholds
// - BuildPageModel, which turns one section into a PageModel
// - LineText and PageText for clipboard text
package ocrpage
