package patterns

// Default rule sets for the Brazilian electronic court filing platforms.
//
// The expressions target the boilerplate each platform stamps onto filed
// documents: digital signature banners, certificate chains, validation codes
// and URLs, watermarks and page furniture. Within each system the rules
// are declared specific-first; the library preserves declaration order
// inside each category.
//
// Span-eating rules use [^\x00] instead of a bare dot so they never cross a
// protected citation span (the cleaner masks citations with NUL-delimited
// placeholders before matching).

// DefaultRules returns the built-in cleaning rule set.
func DefaultRules() []Rule {
	rules := make([]Rule, 0, 64)
	rules = append(rules, pjeRules()...)
	rules = append(rules, esajRules()...)
	rules = append(rules, eprocRules()...)
	rules = append(rules, projudiRules()...)
	rules = append(rules, stfRules()...)
	rules = append(rules, stjRules()...)
	rules = append(rules, genericRules()...)
	rules = append(rules, universalRules()...)
	return rules
}

// pjeRules covers PJE (Processo Judicial Eletrônico, CNJ).
func pjeRules() []Rule {
	systems := []CourtSystem{SystemPJE}
	return []Rule{
		{
			ID:          "pje.dual_signature_banner",
			Description: "PJE dual signature banner (CNJ resolution 281/2019)",
			Systems:     systems,
			Expr:        `(?i)documento\s+assinado\s+por\s+[^\n\x00]{5,100}\s+e\s+certificado\s+digitalmente\s+por\s+[^\n\x00]{5,100}`,
			Category:    CategorySignature,
			Destructive: true,
		},
		{
			ID:          "pje.generated_by",
			Description: "PJE generation timestamp with user CPF",
			Systems:     systems,
			Expr:        `(?i)este\s+documento\s+foi\s+gerado\s+pelo\s+usu[áa]rio\s+\d{3}\.\d{3}\.\d{3}-\d{2}\s+em\s+\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2}`,
			Category:    CategorySignature,
		},
		{
			ID:          "pje.qr_placeholder",
			Description: "PJE QR code placeholder",
			Systems:     systems,
			Expr:        `(?i)\[QR\s+CODE\]|\{QR\s+CODE\}`,
			Category:    CategoryWatermark,
		},
		{
			ID:          "pje.verification_code",
			Description: "PJE verification code (XXXX.9999.9XX9.X9XX)",
			Systems:     systems,
			Expr:        `(?i)c[óo]digo\s+de\s+verifica[çc][ãa]o:\s*[A-Z0-9]{4}\.[0-9]{4}\.[0-9A-Z]{4}\.[A-Z0-9]{4}`,
			Category:    CategoryCertification,
		},
		{
			ID:          "pje.validation_url",
			Description: "PJE validation URL (labor and federal courts)",
			Systems:     systems,
			Expr:        `(?i)https?://[a-z0-9.-]*\.(trt|trf|tst|cnj)\d*\.jus\.br/[^\s\x00]*validar[^\s\x00]*`,
			Category:    CategoryCertification,
		},
		{
			ID:          "pje.footer",
			Description: "PJE generic footer banner",
			Systems:     systems,
			Expr:        `(?im)^[ \t]*[_\-=]+\s*processo\s+judicial\s+eletr[ôo]nico\s*[_\-=]+[ \t]*$`,
			Category:    CategoryHeaderFooter,
		},
	}
}

// esajRules covers ESAJ (TJSP automation system).
func esajRules() []Rule {
	systems := []CourtSystem{SystemESAJ}
	return []Rule{
		{
			ID:          "esaj.signature_bar",
			Description: "ESAJ digital signature bar with timestamp",
			Systems:     systems,
			Expr:        `(?i)assinado\s+digitalmente\s+por:\s*[^\n\x00]{5,80}\s+data:\s*\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2}`,
			Category:    CategorySignature,
			Destructive: true,
		},
		{
			ID:          "esaj.watermark",
			Description: "ESAJ watermark placeholder",
			Systems:     systems,
			Expr:        `(?i)\[marca\s+d.?[áa]gua:?\s*esaj\]`,
			Category:    CategoryWatermark,
		},
		{
			ID:          "esaj.digital_conference",
			Description: "ESAJ digital document conference block",
			Systems:     systems,
			Expr:        `(?is)confer[êe]ncia\s+de\s+documento\s+digital[^\x00]*?portal\s+e-saj`,
			Category:    CategoryCertification,
			Destructive: true,
		},
		{
			ID:          "esaj.document_code",
			Description: "ESAJ rotated side seal with document code",
			Systems:     systems,
			Expr:        `(?i)c[óo]digo\s+do\s+documento:\s*[A-Z0-9]{8,20}`,
			Category:    CategoryCertification,
		},
		{
			ID:          "esaj.document_url",
			Description: "ESAJ document validation URL",
			Systems:     systems,
			Expr:        `(?i)https?://[a-z0-9.-]*\.jus\.br/[^\s\x00]*esaj[^\s\x00]*/documento[^\s\x00]*`,
			Category:    CategoryCertification,
		},
		{
			ID:          "esaj.tjsp_heading",
			Description: "TJSP coat of arms heading",
			Systems:     systems,
			Expr:        `(?i)tribunal\s+de\s+justi[çc]a\s+do\s+estado\s+de\s+s[ãa]o\s+paulo\s*-\s*tjsp`,
			Category:    CategoryHeaderFooter,
		},
		{
			ID:          "esaj.resolution_552",
			Description: "TJSP resolution 552/11 reference",
			Systems:     systems,
			Expr:        `(?i)resolu[çc][ãa]o\s+n?[º°]?\s*552/11`,
			Category:    CategoryHeaderFooter,
		},
	}
}

// eprocRules covers EPROC (federal regional courts).
func eprocRules() []Rule {
	systems := []CourtSystem{SystemEPROC}
	return []Rule{
		{
			ID:          "eproc.pades_seal",
			Description: "EPROC PAdES seal with ICP-Brasil certificate",
			Systems:     systems,
			Expr:        `(?is)assinado\s+eletronicamente\s+por[^\x00]*?certificado\s+digital\s+icp-brasil`,
			Category:    CategorySignature,
			Destructive: true,
		},
		{
			ID:          "eproc.p7s_reference",
			Description: "EPROC detached signature file reference (.p7s)",
			Systems:     systems,
			Expr:        `(?i)assinatura\s+digital\s+dispon[ií]vel\s+em:\s*[^\n\x00]*\.p7s`,
			Category:    CategorySignature,
		},
		{
			ID:          "eproc.iti_checker",
			Description: "ITI conformance checker reference",
			Systems:     systems,
			Expr:        `(?i)verificador\s+de\s+conformidade\s+(iti|icp-brasil)`,
			Category:    CategoryCertification,
		},
		{
			ID:          "eproc.url",
			Description: "EPROC validation URL",
			Systems:     systems,
			Expr:        `(?i)https?://[a-z0-9.-]*\.(trf|tj)[a-z0-9]*\.jus\.br/[^\s\x00]*eproc[^\s\x00]*`,
			Category:    CategoryCertification,
		},
		{
			ID:          "eproc.byterange",
			Description: "CAdES ByteRange technical reference",
			Systems:     systems,
			Expr:        `(?i)byterange\s*\[\s*\d+\s+\d+\s+\d+\s+\d+\s*\]`,
			Category:    CategoryCertification,
		},
	}
}

// projudiRules covers PROJUDI and its regional variations.
func projudiRules() []Rule {
	systems := []CourtSystem{SystemPROJUDI}
	return []Rule{
		{
			ID:          "projudi.pades_seal",
			Description: "PROJUDI PAdES seal with signing date",
			Systems:     systems,
			Expr:        `(?is)digitalmente\s+assinado\s+por[^\x00]*?data:\s*\d{2}/\d{2}/\d{4}`,
			Category:    CategorySignature,
			Destructive: true,
		},
		{
			ID:          "projudi.free_signer",
			Description: "TJRJ free signer banner",
			Systems:     systems,
			Expr:        `(?i)assinador\s+livre\s+(tjrj|tribunal\s+de\s+justi[çc]a\s+do\s+rio\s+de\s+janeiro)`,
			Category:    CategorySignature,
		},
		{
			ID:          "projudi.coat_of_arms",
			Description: "Regional coat of arms placeholder",
			Systems:     systems,
			Expr:        `(?i)\[bras[ãa]o:?\s*[^\]\x00]{5,50}\]`,
			Category:    CategoryWatermark,
		},
		{
			ID:          "projudi.url",
			Description: "PROJUDI validation URL",
			Systems:     systems,
			Expr:        `(?i)https?://[a-z0-9.-]*\.jus\.br/[^\s\x00]*projudi[^\s\x00]*`,
			Category:    CategoryCertification,
		},
		{
			ID:          "projudi.version",
			Description: "PROJUDI version footer",
			Systems:     systems,
			Expr:        `(?i)projudi\s+-\s+vers[ãa]o\s+\d+\.\d+(\.\d+)?`,
			Category:    CategoryHeaderFooter,
		},
	}
}

// stfRules covers the Supremo Tribunal Federal document portal.
func stfRules() []Rule {
	systems := []CourtSystem{SystemSTF}
	return []Rule{
		{
			ID:          "stf.pkcs7",
			Description: "STF PKCS#7 signature reference",
			Systems:     systems,
			Expr:        `(?i)assinatura\s+digital\s+pkcs\s*[#]?\s*7`,
			Category:    CategorySignature,
		},
		{
			ID:          "stf.watermark_notice",
			Description: "STF watermark overwrite notice",
			Systems:     systems,
			Expr:        `(?is)a\s+inser[çc][ãa]o\s+da\s+marca\s+d.?[áa]gua\s+se\s+sobrescreve[^\x00]*?sistemas\s+internos\s+do\s+tribunal`,
			Category:    CategoryWatermark,
			Destructive: true,
		},
		{
			ID:          "stf.consultant_cpf",
			Description: "STF watermark with consultant CPF",
			Systems:     systems,
			Expr:        `(?i)cpf\s+do\s+consulente:\s*\d{3}\.\d{3}\.\d{3}-\d{2}`,
			Category:    CategoryWatermark,
		},
		{
			ID:          "stf.validation_url",
			Description: "STF validation URL",
			Systems:     systems,
			Expr:        `(?i)https?://(www\.)?stf\.jus\.br/[^\s\x00]*(validar|autenticar)[^\s\x00]*`,
			Category:    CategoryCertification,
		},
		{
			ID:          "stf.heading",
			Description: "STF standard heading up to PeT v3 marker",
			Systems:     systems,
			Expr:        `(?is)supremo\s+tribunal\s+federal\s*-\s*stf[^\x00]*?pet\s+v3`,
			Category:    CategoryHeaderFooter,
			Destructive: true,
		},
		{
			ID:          "stf.victor",
			Description: "Victor project OCR stamp",
			Systems:     systems,
			Expr:        `(?i)documento\s+processado\s+pelo\s+projeto\s+victor`,
			Category:    CategoryHeaderFooter,
		},
		{
			ID:          "stf.resolution_693",
			Description: "STF resolution 693/2020 reference",
			Systems:     systems,
			Expr:        `(?i)resolu[çc][ãa]o\s+stf\s+n?[º°]?\s*693/2020`,
			Category:    CategoryHeaderFooter,
		},
	}
}

// stjRules covers the Superior Tribunal de Justiça document portal.
func stjRules() []Rule {
	systems := []CourtSystem{SystemSTJ}
	return []Rule{
		{
			ID:          "stj.certificate_data",
			Description: "STJ signer name with CPF",
			Systems:     systems,
			Expr:        `(?i)assinado\s+por:\s*[^\n\x00]{5,80}\s+-\s+cpf:\s*\d{3}\.\d{3}\.\d{3}-\d{2}`,
			Category:    CategorySignature,
			Destructive: true,
		},
		{
			ID:          "stj.timestamp",
			Description: "STJ signing timestamp with timezone",
			Systems:     systems,
			Expr:        `(?i)data:\s*\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2}\s+(brt|brst|-03:?00|-02:?00)`,
			Category:    CategorySignature,
		},
		{
			ID:          "stj.qr_notice",
			Description: "STJ QR code validation notice",
			Systems:     systems,
			Expr:        `(?i)valide\s+este\s+documento\s+via\s+qr\s+code`,
			Category:    CategoryWatermark,
		},
		{
			ID:          "stj.watermark",
			Description: "STJ institutional logo placeholder",
			Systems:     systems,
			Expr:        `(?i)\[logo\s+institucional\s+stj\]`,
			Category:    CategoryWatermark,
		},
		{
			ID:          "stj.verification_code",
			Description: "STJ verification code",
			Systems:     systems,
			Expr:        `(?i)c[óo]digo:\s*[A-Z0-9]{16,32}`,
			Category:    CategoryCertification,
		},
		{
			ID:          "stj.auth_url",
			Description: "STJ authentication URL",
			Systems:     systems,
			Expr:        `(?i)autentique\s+em:\s*https?://(www\.)?stj\.jus\.br/validar[^\s\x00]*`,
			Category:    CategoryCertification,
		},
		{
			ID:          "stj.mp_disclaimer",
			Description: "MP 2.200-2/2001 signature disclaimer",
			Systems:     systems,
			Expr:        `(?i)documento\s+assinado\s+digitalmente\s+conforme\s+mp\s+n?[º°]?\s*2\.?200-2/2001`,
			Category:    CategoryCertification,
		},
		{
			ID:          "stj.heading",
			Description: "STJ standard heading up to the electronic process hub",
			Systems:     systems,
			Expr:        `(?is)superior\s+tribunal\s+de\s+justi[çc]a\s*-\s*stj[^\x00]*?central\s+do\s+processo\s+eletr[ôo]nico`,
			Category:    CategoryHeaderFooter,
			Destructive: true,
		},
	}
}

// genericRules catches signature boilerplate shared by systems the library
// has no dedicated set for. They run with the universal group so that a
// second pass over already-cleaned text never finds fresh matches.
func genericRules() []Rule {
	return []Rule{
		{
			ID:          "generic.signed_by",
			Description: "Generic digital signature line",
			Expr:        `(?i)assinado\s+digitalmente\s+por:?\s*[^\n\x00]{5,100}`,
			Category:    CategorySignature,
			Destructive: true,
		},
		{
			ID:          "generic.signature_date",
			Description: "Generic signing date line",
			Expr:        `(?i)data\s+da\s+assinatura:?\s*\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}(:\d{2})?`,
			Category:    CategorySignature,
		},
		{
			ID:          "generic.digital_certificate",
			Description: "Generic digital certificate line",
			Expr:        `(?i)certificado\s+digital:?\s*[^\n\x00]{5,100}`,
			Category:    CategoryCertification,
			Destructive: true,
		},
		{
			ID:          "generic.validation_url",
			Description: "Generic validation URL line",
			Expr:        `(?i)valide?\s+este\s+documento\s+em:?\s*https?://[^\s\x00]+`,
			Category:    CategoryCertification,
		},
	}
}

// universalRules apply to every document regardless of the detected system:
// ICP-Brasil certificate chain remnants and page furniture.
func universalRules() []Rule {
	return []Rule{
		{
			ID:          "universal.cert_serial",
			Description: "Certificate serial number",
			Expr:        `(?i)serial\s+number:?\s*[0-9A-F]{16,}`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.sha1",
			Description: "SHA-1 digest line",
			Expr:        `(?i)sha-?1:?\s*[0-9A-F]{40}`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.sha256",
			Description: "SHA-256 digest line",
			Expr:        `(?i)sha-?256:?\s*[0-9A-F]{64}`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.icp_authority",
			Description: "ICP-Brasil certificate authority line",
			Expr:        `(?i)ac\s+[a-z]+\s+-\s+icp-brasil`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.cert_issuer",
			Description: "Certificate issuer distinguished name",
			Expr:        `(?i)emissor:?\s*cn\s*=\s*ac\s+[^\n\x00]{10,80}`,
			Category:    CategoryCertification,
			Destructive: true,
		},
		{
			ID:          "universal.cert_subject",
			Description: "Certificate subject with CPF",
			Expr:        `(?i)subject:?\s*cn\s*=\s*[^\n\x00]{10,80}cpf\s*=\s*\d{11}`,
			Category:    CategoryCertification,
			Destructive: true,
		},
		{
			ID:          "universal.cert_validity",
			Description: "Certificate validity window",
			Expr:        `(?i)v[áa]lido\s+de:?\s*\d{2}/\d{2}/\d{4}\s+at[ée]:?\s*\d{2}/\d{2}/\d{4}`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.ades_standard",
			Description: "PAdES/CAdES/XAdES standard reference",
			Expr:        `(?i)\b(pades|cades|xades)\s+(signature|assinatura)`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.etsi_reference",
			Description: "ETSI TS 102 778 reference",
			Expr:        `(?i)etsi\s+ts\s+102\s+778`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.iti_institute",
			Description: "ITI institute full name",
			Expr:        `(?i)iti\s+-\s+instituto\s+nacional\s+de\s+tecnologia\s+da\s+informa[çc][ãa]o`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.iti_validator_url",
			Description: "ITI validator URL",
			Expr:        `(?i)https?://(www\.)?validar\.iti\.gov\.br[^\s\x00]*`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.rfc3161",
			Description: "RFC 3161 timestamp reference",
			Expr:        `(?i)timestamp\s+rfc\s+3161`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.qualified_signature",
			Description: "ICP-Brasil qualified signature reference",
			Expr:        `(?i)assinatura\s+qualificada\s+icp-brasil`,
			Category:    CategoryCertification,
		},
		{
			ID:          "universal.separator_lines",
			Description: "Decorative separator lines",
			// Edge whitespace is tolerated here: these rules run before the
			// trailing-space pass, and a separator left behind by spaces
			// would be removable on a second run but not the first.
			Expr:        `(?m)^[ \t]*[_\-=*]{10,}[ \t]*$`,
			Category:    CategoryHeaderFooter,
		},
		{
			ID:          "universal.page_numbers",
			Description: "Isolated page number lines",
			Expr:        `(?im)^[ \t]*p[áa]gina\s+\d+\s+(de|/)\s+\d+[ \t]*$`,
			Category:    CategoryHeaderFooter,
		},
		{
			ID:          "universal.trailing_space",
			Description: "Trailing horizontal whitespace",
			Expr:        `(?m)[ \t]+$`,
			Category:    CategoryWhitespace,
		},
	}
}

// DefaultSignatures returns the built-in detection signals. Each one is a
// marker that reliably identifies the platform that produced a document.
func DefaultSignatures() []SignatureRule {
	return []SignatureRule{
		// PJE
		{ID: "pje.sig.platform_name", System: SystemPJE, Expr: `(?i)processo\s+judicial\s+eletr[ôo]nico`},
		{ID: "pje.sig.acronym", System: SystemPJE, Expr: `(?i)\bpje\b`},
		{ID: "pje.sig.verification_code", System: SystemPJE, Expr: `(?i)c[óo]digo\s+de\s+verifica[çc][ãa]o:\s*[A-Z0-9]{4}\.[0-9]{4}\.[0-9A-Z]{4}\.[A-Z0-9]{4}`},
		{ID: "pje.sig.generated_by", System: SystemPJE, Expr: `(?i)este\s+documento\s+foi\s+gerado\s+pelo\s+usu[áa]rio`},
		{ID: "pje.sig.validation_url", System: SystemPJE, Expr: `(?i)https?://[a-z0-9.-]*\.(trt|trf|tst|cnj)\d*\.jus\.br/[^\s]*validar`},
		{ID: "pje.sig.dual_signature", System: SystemPJE, Expr: `(?i)documento\s+assinado\s+por\s+[^\n]{5,100}\s+e\s+certificado\s+digitalmente\s+por`},

		// ESAJ
		{ID: "esaj.sig.acronym", System: SystemESAJ, Expr: `(?i)\be-?saj\b`},
		{ID: "esaj.sig.tjsp", System: SystemESAJ, Expr: `(?i)tribunal\s+de\s+justi[çc]a\s+do\s+estado\s+de\s+s[ãa]o\s+paulo|\btjsp\b`},
		{ID: "esaj.sig.conference", System: SystemESAJ, Expr: `(?i)confer[êe]ncia\s+de\s+documento\s+digital`},
		{ID: "esaj.sig.document_code", System: SystemESAJ, Expr: `(?i)c[óo]digo\s+do\s+documento:\s*[A-Z0-9]{8,20}`},
		{ID: "esaj.sig.document_url", System: SystemESAJ, Expr: `(?i)https?://[a-z0-9.-]*\.jus\.br/[^\s]*esaj`},
		{ID: "esaj.sig.resolution_552", System: SystemESAJ, Expr: `(?i)resolu[çc][ãa]o\s+n?[º°]?\s*552/11`},

		// EPROC
		{ID: "eproc.sig.acronym", System: SystemEPROC, Expr: `(?i)\beproc\b`},
		{ID: "eproc.sig.p7s", System: SystemEPROC, Expr: `(?i)assinatura\s+digital\s+dispon[ií]vel\s+em:\s*[^\n]*\.p7s`},
		{ID: "eproc.sig.iti_checker", System: SystemEPROC, Expr: `(?i)verificador\s+de\s+conformidade`},
		{ID: "eproc.sig.url", System: SystemEPROC, Expr: `(?i)https?://[a-z0-9.-]*\.(trf|tj)[a-z0-9]*\.jus\.br/[^\s]*eproc`},
		{ID: "eproc.sig.byterange", System: SystemEPROC, Expr: `(?i)byterange\s*\[`},

		// PROJUDI
		{ID: "projudi.sig.acronym", System: SystemPROJUDI, Expr: `(?i)\bprojudi\b`},
		{ID: "projudi.sig.url", System: SystemPROJUDI, Expr: `(?i)https?://[a-z0-9.-]*\.jus\.br/[^\s]*projudi`},
		{ID: "projudi.sig.free_signer", System: SystemPROJUDI, Expr: `(?i)assinador\s+livre`},
		{ID: "projudi.sig.version", System: SystemPROJUDI, Expr: `(?i)projudi\s+-\s+vers[ãa]o\s+\d+\.\d+`},

		// STF
		{ID: "stf.sig.full_name", System: SystemSTF, Expr: `(?i)supremo\s+tribunal\s+federal`},
		{ID: "stf.sig.validation_url", System: SystemSTF, Expr: `(?i)https?://(www\.)?stf\.jus\.br/`},
		{ID: "stf.sig.consultant_cpf", System: SystemSTF, Expr: `(?i)cpf\s+do\s+consulente:`},
		{ID: "stf.sig.victor", System: SystemSTF, Expr: `(?i)projeto\s+victor`},
		{ID: "stf.sig.resolution_693", System: SystemSTF, Expr: `(?i)resolu[çc][ãa]o\s+stf\s+n?[º°]?\s*693/2020`},

		// STJ
		{ID: "stj.sig.full_name", System: SystemSTJ, Expr: `(?i)superior\s+tribunal\s+de\s+justi[çc]a`},
		{ID: "stj.sig.auth_url", System: SystemSTJ, Expr: `(?i)https?://(www\.)?stj\.jus\.br/validar`},
		{ID: "stj.sig.process_hub", System: SystemSTJ, Expr: `(?i)central\s+do\s+processo\s+eletr[ôo]nico`},
		{ID: "stj.sig.mp_disclaimer", System: SystemSTJ, Expr: `(?i)documento\s+assinado\s+digitalmente\s+conforme\s+mp`},
		{ID: "stj.sig.qr_notice", System: SystemSTJ, Expr: `(?i)valide\s+este\s+documento\s+via\s+qr\s+code`},
		{ID: "stj.sig.verification_code", System: SystemSTJ, Expr: `(?i)c[óo]digo:\s*[A-Z0-9]{16,32}`},
	}
}
