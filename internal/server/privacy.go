package server

// privacyPolicyHTML is served at /privacy-policy. Agent platforms require a
// reachable policy page before they will register a tool server.
const privacyPolicyHTML = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>개인정보 처리방침 - KRX 데이터 도구</title>
<style>
body { font-family: sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #222; }
h1 { font-size: 1.6rem; }
h2 { font-size: 1.2rem; margin-top: 2rem; }
</style>
</head>
<body>
<h1>개인정보 처리방침</h1>
<p class="updated">시행일: 2024년 1월 1일</p>

<section id="collection">
<h2>수집하는 정보</h2>
<p>이 서비스는 한국거래소에 공개된 시장 데이터를 조회하는 도구만 제공합니다.
이름, 이메일, 계정 정보 등 개인을 식별할 수 있는 정보는 수집하지 않습니다.</p>
</section>

<section id="usage">
<h2>요청 데이터의 처리</h2>
<p>도구 호출에 포함된 종목코드, 날짜, 시장 구분 값은 한국거래소 정보데이터시스템에
조회를 보내는 데에만 쓰이며 저장하지 않습니다.</p>
</section>

<section id="logs">
<h2>로그</h2>
<p>장애 대응을 위해 요청 경로, 응답 코드, 처리 시간, 요청 식별자가 서버 로그에 남을 수
있습니다. 로그에는 요청 본문이 기록되지 않습니다.</p>
</section>

<section id="third-parties">
<h2>제3자 제공</h2>
<p>수집한 개인정보가 없으므로 제3자에게 제공하는 정보도 없습니다. 시장 데이터는
한국거래소에서 직접 조회됩니다.</p>
</section>

<section id="contact">
<h2>문의</h2>
<p>이 방침에 대한 문의는 프로젝트 저장소의 이슈 트래커를 이용해 주십시오.</p>
</section>
</body>
</html>
`
