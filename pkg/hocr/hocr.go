// Package hocr imports hOCR documents, the HTML-based OCR format written by
// Tesseract and similar engines, into the win11OneOcr XHTML page contract
// that the viewer enriches.
//
// The object model keeps the part of the hOCR hierarchy the viewer can
// show:
//
// - Document: title, language and ocr-* meta declarations
// - Page: class 'ocr_page', with its image name and bounding box
// - Line: class 'ocr_line' and the other line-level classes
// - Word: class 'ocrx_word', with its bounding box and x_wconf
//
// Areas and paragraphs are flattened away. Words that sit outside any line
// are gathered into one line per enclosing element.
//
// Main Functions:
//
// - Parse: reads hOCR HTML into the object model
// - RenderXHTML: writes the model as win11OneOcrPage sections
package hocr
